package bot

// Stats counts search work. NodesExpanded is one per visited node below the
// root; NodesPruned is one per cutoff, however many siblings it skipped.
type Stats struct {
	NodesExpanded int64 `json:"nodesExpanded"`
	NodesPruned   int64 `json:"nodesPruned"`
}

func (s *Stats) Add(o Stats) {
	s.NodesExpanded += o.NodesExpanded
	s.NodesPruned += o.NodesPruned
}

func (s *Stats) Reset() {
	*s = Stats{}
}
