package output

import (
	"context"

	"github.com/hejijunhao/lsaccess/internal/model"
)

// Output defines the interface for table destinations.
type Output interface {
	WriteTable(ctx context.Context, records []model.Record) error
}
