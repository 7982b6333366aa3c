package graph

import "fmt"

// =============================================================================
// Type Codes - Single Source of Truth
// =============================================================================

// NodeType identifies what a node stands for. The numeric values are the
// wire bytes used by the pgraph codec and must never be reordered.
type NodeType uint8

const (
	NodeTypeToken NodeType = iota + 1
	NodeTypeEntity
	NodeTypePredicate
	NodeTypeEvent
	NodeTypePhrase
	NodeTypeDiscourseUnit
	NodeTypeDiscourseRel
	NodeTypeNegation
	NodeTypeModality
	NodeTypeQuantifier
	NodeTypeTimeExpr
	NodeTypePlace
	NodeTypeKGEntity
	NodeTypeKGConcept
)

var nodeTypeNames = map[NodeType]string{
	NodeTypeToken:         "token",
	NodeTypeEntity:        "entity",
	NodeTypePredicate:     "predicate",
	NodeTypeEvent:         "event",
	NodeTypePhrase:        "phrase",
	NodeTypeDiscourseUnit: "discourse_unit",
	NodeTypeDiscourseRel:  "discourse_rel",
	NodeTypeNegation:      "negation",
	NodeTypeModality:      "modality",
	NodeTypeQuantifier:    "quantifier",
	NodeTypeTimeExpr:      "time_expr",
	NodeTypePlace:         "place",
	NodeTypeKGEntity:      "kg_entity",
	NodeTypeKGConcept:     "kg_concept",
}

// String returns the lowercase name of the node type, or "node_type(N)"
// for values outside the closed set.
func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("node_type(%d)", uint8(t))
}

// IsValid reports whether the value is one of the defined node types.
func (t NodeType) IsValid() bool { return t >= NodeTypeToken && t <= NodeTypeKGConcept }

// EdgeType identifies the relation an edge expresses. The numeric values
// are the wire bytes used by the pgraph codec and must never be reordered.
type EdgeType uint8

const (
	EdgeTypeDep EdgeType = iota + 1
	EdgeTypeRole
	EdgeTypeCoref
	EdgeTypeDiscourse
	EdgeTypeScopesOver
	EdgeTypeHappensAt
	EdgeTypeLocatedIn
	EdgeTypeSameAs
	EdgeTypeNext
	EdgeTypePunct
	EdgeTypeArgOf
)

var edgeTypeNames = map[EdgeType]string{
	EdgeTypeDep:        "dep",
	EdgeTypeRole:       "role",
	EdgeTypeCoref:      "coref",
	EdgeTypeDiscourse:  "discourse",
	EdgeTypeScopesOver: "scopes_over",
	EdgeTypeHappensAt:  "happens_at",
	EdgeTypeLocatedIn:  "located_in",
	EdgeTypeSameAs:     "same_as",
	EdgeTypeNext:       "next",
	EdgeTypePunct:      "punct",
	EdgeTypeArgOf:      "arg_of",
}

// String returns the lowercase name of the edge type, or "edge_type(N)"
// for values outside the closed set.
func (t EdgeType) String() string {
	if s, ok := edgeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("edge_type(%d)", uint8(t))
}

// IsValid reports whether the value is one of the defined edge types.
func (t EdgeType) IsValid() bool { return t >= EdgeTypeDep && t <= EdgeTypeArgOf }

// GraphType describes the overall structure of a graph.
type GraphType uint8

const (
	GraphTypeSimple GraphType = iota + 1
	GraphTypeMulti
	GraphTypeTree
	GraphTypeDAG
	GraphTypeHetero
	GraphTypeTemporal
)

var graphTypeNames = map[GraphType]string{
	GraphTypeSimple:   "simple",
	GraphTypeMulti:    "multi",
	GraphTypeTree:     "tree",
	GraphTypeDAG:      "dag",
	GraphTypeHetero:   "hetero",
	GraphTypeTemporal: "temporal",
}

// String returns the lowercase name of the graph type, or "graph_type(N)"
// for values outside the closed set.
func (t GraphType) String() string {
	if s, ok := graphTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("graph_type(%d)", uint8(t))
}

// IsValid reports whether the value is one of the defined graph types.
func (t GraphType) IsValid() bool { return t >= GraphTypeSimple && t <= GraphTypeTemporal }

// SchemaID names the annotation schema a graph was built under. Writing
// is the only schema currently defined.
type SchemaID uint8

// SchemaWriting is the writing-analysis schema: token nodes with NEXT
// adjacency edges, sub-typed by part of speech after annotation.
const SchemaWriting SchemaID = 1

// String returns the lowercase schema name, or "schema(N)" for unknown ids.
func (s SchemaID) String() string {
	if s == SchemaWriting {
		return "writing"
	}
	return fmt.Sprintf("schema(%d)", uint8(s))
}

// =============================================================================
// Bit Flags
// =============================================================================

// NodeFlags is the 16-bit flag field carried by every node. Bits 8-15 are
// reserved and round-trip through the codec untouched.
type NodeFlags uint16

const (
	NodeFlagRoot NodeFlags = 1 << iota
	NodeFlagStop
	NodeFlagCapitalized
	NodeFlagPunct
	NodeFlagProposed
	NodeFlagHead
	NodeFlagSentEndStrong
	NodeFlagSentEndWeak
)

// Has reports whether all bits in mask are set.
func (f NodeFlags) Has(mask NodeFlags) bool { return f&mask == mask }

var nodeFlagNames = []struct {
	bit  NodeFlags
	name string
}{
	{NodeFlagRoot, "root"},
	{NodeFlagStop, "stop"},
	{NodeFlagCapitalized, "capitalized"},
	{NodeFlagPunct, "punct"},
	{NodeFlagProposed, "proposed"},
	{NodeFlagHead, "head"},
	{NodeFlagSentEndStrong, "sent_end_strong"},
	{NodeFlagSentEndWeak, "sent_end_weak"},
}

// Names returns the names of all set flags in bit order. Reserved bits
// have no names and are omitted. Returns nil when no named flag is set.
func (f NodeFlags) Names() []string {
	var names []string
	for _, nf := range nodeFlagNames {
		if f.Has(nf.bit) {
			names = append(names, nf.name)
		}
	}
	return names
}

// EdgeFlags is the 16-bit flag field carried by every edge. Bits 6-15 are
// reserved and round-trip through the codec untouched.
type EdgeFlags uint16

const (
	EdgeFlagDirected EdgeFlags = 1 << iota
	EdgeFlagProposed
	EdgeFlagSymmetric
	EdgeFlagCrossSent
	EdgeFlagNegated
	EdgeFlagInferred
)

// Has reports whether all bits in mask are set.
func (f EdgeFlags) Has(mask EdgeFlags) bool { return f&mask == mask }

var edgeFlagNames = []struct {
	bit  EdgeFlags
	name string
}{
	{EdgeFlagDirected, "directed"},
	{EdgeFlagProposed, "proposed"},
	{EdgeFlagSymmetric, "symmetric"},
	{EdgeFlagCrossSent, "cross_sent"},
	{EdgeFlagNegated, "negated"},
	{EdgeFlagInferred, "inferred"},
}

// Names returns the names of all set flags in bit order. Reserved bits
// have no names and are omitted. Returns nil when no named flag is set.
func (f EdgeFlags) Names() []string {
	var names []string
	for _, ef := range edgeFlagNames {
		if f.Has(ef.bit) {
			names = append(names, ef.name)
		}
	}
	return names
}
