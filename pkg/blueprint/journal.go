package blueprint

import "github.com/matzehuels/graphclip/pkg/host"

// transaction groups edits made between Begin and Commit.
type transaction struct {
	graph       *Graph
	description string
	undo        []func()
	closed      bool
}

// nested is returned by Begin while another transaction is open. Its edits
// land in the outer transaction.
type nested struct{}

func (nested) Commit()   {}
func (nested) Rollback() {}

// Begin opens a transaction. Edits made until Commit or Rollback are
// journaled as one undoable unit. Nested calls join the open transaction.
func (g *Graph) Begin(description string) host.Transaction {
	if g.open != nil {
		return nested{}
	}
	tx := &transaction{graph: g, description: description}
	g.open = tx
	return tx
}

// Commit closes the transaction and pushes it onto the undo history.
// Empty transactions are discarded.
func (tx *transaction) Commit() {
	if tx.closed {
		return
	}
	tx.closed = true
	tx.graph.open = nil
	if len(tx.undo) > 0 {
		tx.graph.history = append(tx.graph.history, tx)
	}
}

// Rollback reverts every edit of the transaction and closes it.
func (tx *transaction) Rollback() {
	if tx.closed {
		return
	}
	tx.closed = true
	tx.graph.open = nil
	tx.revert()
}

func (tx *transaction) revert() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// record journals an undo step when a transaction is open.
func (g *Graph) record(undo func()) {
	if g.open != nil {
		g.open.undo = append(g.open.undo, undo)
	}
}

// Undo reverts the most recent committed transaction and returns its
// description. It returns false when there is nothing to undo or a
// transaction is still open.
func (g *Graph) Undo() (string, bool) {
	if g.open != nil || len(g.history) == 0 {
		return "", false
	}
	tx := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	tx.revert()
	return tx.description, true
}

// UndoDepth returns the number of committed transactions that can be undone.
func (g *Graph) UndoDepth() int { return len(g.history) }
