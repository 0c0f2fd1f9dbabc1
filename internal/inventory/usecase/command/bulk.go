package command

import (
	"fmt"
	"strings"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Batch size limits
const (
	MaxBulkCreate      = 50
	MaxBulkUpdate      = 100
	MaxBulkStockUpdate = 100
	MaxBulkDelete      = 50
)

// batchProblems collects per-entry failures keyed by 1-based position
type batchProblems []string

func (p *batchProblems) add(index int, reason string) {
	*p = append(*p, fmt.Sprintf("Item %d: %s", index+1, reason))
}

func (p batchProblems) err() error {
	if len(p) == 0 {
		return nil
	}
	return apperror.InvalidArgument("Validation failed: %s", strings.Join(p, "; "))
}

func checkBatchSize(n, max int, noun, verb string) error {
	if n == 0 {
		return apperror.InvalidArgument("%s array is required and must not be empty", noun)
	}
	if n > max {
		return apperror.InvalidArgument("Cannot %s more than %d items at once", verb, max)
	}
	return nil
}

// atEntry prefixes an error raised while applying the entry at index
func atEntry(index int, err error) error {
	return apperror.Prefix(err, fmt.Sprintf("Item %d: ", index+1))
}
