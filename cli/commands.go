package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Verbose   bool   `help:"Enable debug logging." short:"v"`
	NoColor   bool   `help:"Disable colored output."`
	Config    string `help:"Settings file (defaults to .tclcodec.toml in the working directory)." type:"path"`
}

type Commands struct {
	Globals

	Parse  ParseCmd  `cmd:"" help:"Decode list-format text and print it in canonical form."`
	Dump   DumpCmd   `cmd:"" help:"Encode a JSON document as list-format text."`
	Check  CheckCmd  `cmd:"" help:"Check that list-format input decodes."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging list-format input."`
	Serve  ServeCmd  `cmd:"" help:"Start the web playground."`
}
