package nlu

// Kind discriminates parsed commands.
type Kind string

const (
	KindExit       Kind = "exit"
	KindOpenApp    Kind = "open_app"
	KindCloseApp   Kind = "close_app"
	KindOpenFolder Kind = "open_folder"
	KindDeleteFile Kind = "delete_file"
	KindGeneral    Kind = "general"
)

// Command is one parsed utterance. Arg carries the kind's single payload:
// an application name, a folder name, a file path, or the raw text for
// general queries. Arg may be empty; handlers deal with that.
type Command struct {
	Kind Kind
	Arg  string
}
