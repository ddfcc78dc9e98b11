// Package display renders completed transfers to an output sink.
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/payflow-labs/transfer-service/internal/domain"
)

// Console writes a human-readable rendition of a transaction log to w.
// The sink is injected so the core never depends on a concrete output.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Render(log *domain.TransactionLog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "Transaction ID: %s\n", log.ID)
	fmt.Fprintf(c.w, "Date: %s\n", log.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(c.w, "Accounting Entries:")
	for _, entry := range log.Entries {
		fmt.Fprintf(c.w, "  Account Number: %s\n", entry.AccountNumber)
		fmt.Fprintf(c.w, "  Amount: %d %s\n", entry.Amount.Value, entry.Amount.Currency)
		fmt.Fprintf(c.w, "  New Balance: %d %s\n", entry.NewBalance.Value, entry.NewBalance.Currency)
		fmt.Fprintln(c.w)
	}
	fmt.Fprintln(c.w, "-----------------------------")
}
