package session

import "github.com/hashicorp/hcl/v2"

// document is the decoding target of a whole session file.
type document struct {
	Version int            `hcl:"version"`
	NextID  *uint64        `hcl:"next_id,optional"`
	View    *viewBlock     `hcl:"view,block"`
	Customs []*customBlock `hcl:"custom_node,block"`
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Edges   []*edgeBlock   `hcl:"edge,block"`
	Refs    []*refBlock    `hcl:"ref,block"`
}

type viewBlock struct {
	X    float64 `hcl:"x,optional"`
	Y    float64 `hcl:"y,optional"`
	Zoom float64 `hcl:"zoom,optional"`
}

type customBlock struct {
	Name       string          `hcl:"name,label"`
	Visualise  string          `hcl:"visualise,optional"`
	Nodes      []*nodeBlock    `hcl:"node,block"`
	Edges      []*edgeBlock    `hcl:"edge,block"`
	Refs       []*refBlock     `hcl:"ref,block"`
	Promotions []*promoteBlock `hcl:"promote,block"`
}

type nodeBlock struct {
	ID        string      `hcl:"id,label"`
	Type      string      `hcl:"type"`
	Selection *int        `hcl:"selection,optional"`
	Custom    string      `hcl:"custom,optional"`
	Props     *propsBlock `hcl:"props,block"`
	DefRange  hcl.Range   `hcl:",def_range"`
}

// propsBlock keeps the raw attributes; each is decoded against the node's
// own property type.
type propsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type edgeBlock struct {
	From     string    `hcl:"from"`
	To       string    `hcl:"to"`
	DefRange hcl.Range `hcl:",def_range"`
}

type refBlock struct {
	Node     string    `hcl:"node"`
	Port     string    `hcl:"port"`
	ID       string    `hcl:"id"`
	DefRange hcl.Range `hcl:",def_range"`
}

type promoteBlock struct {
	Port string `hcl:"port"`
	Name string `hcl:"name"`
}
