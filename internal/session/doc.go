/*
Package session owns one editable node graph together with the id allocator
and view state a front end needs, and persists it as HCL.

A saved session looks like:

	version = 1
	next_id = 4

	view {
	  x    = 0
	  y    = 0
	  zoom = 1
	}

	custom_node "dot" {
	  visualise = "node_1"
	  node "node_1" {
	    type = "ellipse"
	  }
	  promote {
	    port = "node_1.in.rx"
	    name = "radius"
	  }
	}

	node "node_1" {
	  type = "grid"
	  props {
	    rows = 2
	  }
	}

	node "node_3" {
	  type   = "custom"
	  custom = "dot"
	}

	edge {
	  from = "node_1.out.grid"
	  to   = "node_2.in.grid"
	}

	ref {
	  node = "node_2"
	  port = "node_1.out.grid"
	  id   = "6f1c..."
	}

Only stored internal properties, structure and refs are written; computed
results are rebuilt by Load.
*/
package session
