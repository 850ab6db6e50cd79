package sema

// Program is the best-effort final result of a compilation run: the
// merged type/symbol universe and the set of files that were expanded,
// in expansion order.
type Program struct {
	EntryPoint string
	Files      []string // absolute paths, entry point first, includes in expansion order
	Universe   *Universe

	pipelineFlows    []flowDecl
	pipelineBodySeen map[string]bool // stage text -> defined
}

type flowDecl struct {
	from, to string
	name     string
	typeName string
}

func newProgram(entry string) *Program {
	return &Program{
		EntryPoint:       entry,
		pipelineBodySeen: make(map[string]bool),
	}
}
