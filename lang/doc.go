// Package lang compiles configuration strings: short encoded names such as
// cdo+jemalloc.dbg that describe how a native build tree is configured.
//
// A configuration string is compiled into an [Environment] of variable
// overrides and an ordered argument list for a ./configure script. The
// package never touches the filesystem or runs anything; it only expands
// strings against a set of lookup [Tables].
//
// # Grammar
//
//	ConfigString := [Marker] Prefix Body
//	Prefix       := Compiler Arch Opt | Compiler Opt Arch
//	Body         := Flag*
//	Flag         := Env | Enable | With | Disable | Without
//	              | Literal | Macro | Shortcut | Terminator
//	Env          := '^' [Name ['=' [^;]*]] ';'
//	Name         := [A-Za-z_][A-Za-z0-9_]*
//	Enable       := '+' [^sigil]*
//	With         := '=' [^sigil]*
//	Disable      := '!' [^sigil]*
//	Without      := '?' [^sigil]*
//	Literal      := '\'' [^;]* ';'
//	Macro        := '.' [^sigil]*
//	Shortcut     := '*' [^sigil]*
//	Terminator   := '@' | '%'
//
// The prefix selects a compiler, an architecture of that compiler and an
// optimization level. Their templates are expanded first, in the order the
// selectors appear, and then the body. Shortcuts and macros name further templates that are
// expanded in place through the same rules, into the same accumulators.
//
// # Profiles
//
// A [Profile] fixes which sigils are active, the order of the prefix,
// whether a leading marker is required, and the tables in force. Built-in
// profiles are returned by [LookupProfile]; custom tables are read with
// [LoadProfile].
//
// # Example
//
//	res, err := lang.Compile(ctx, "cdo+jemalloc.dbg")
//	if err != nil {
//		lang.Report(os.Stderr, err, "cdo+jemalloc.dbg")
//		return err
//	}
//	fmt.Println(res.Command(lang.DefaultProgram))
package lang
