package pos

import (
	"context"
	"io"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/report"
)

type ExportSales struct {
	list *ListOrders
}

func NewExportSales(list *ListOrders) *ExportSales {
	return &ExportSales{list: list}
}

func (uc *ExportSales) Execute(ctx context.Context, actor authz.Actor, from, to time.Time, w io.Writer) error {
	orders, err := uc.list.Execute(ctx, actor, from, to)
	if err != nil {
		return err
	}
	return report.WriteSales(w, orders)
}
