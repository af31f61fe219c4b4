package app

import (
	"github.com/spf13/cobra"

	"github.com/nicholasloureiro/backend-cs/internal/application/report"
)

func (a *App) processCommand() *cobra.Command {
	var (
		weekly, inventory, ranking string
		invoices, orders           []string
		out                        outputFlags
	)
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transforma y concilia en una sola ejecución",
		Example: `  relatorio process --weekly faturamento.xlsx --inventory estoque.xlsx \
    --nf nf1.pdf --nf nf2.pdf --pedido pedido.pdf --format pdf --out ./saida`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.exporter.Resolve(out.format); err != nil {
				return err
			}
			var fs files
			defer fs.close()

			in := report.ProcessInput{}
			var err error
			if in.Sales, err = fs.open(weekly); err != nil {
				return err
			}
			if in.Inventory, err = fs.open(inventory); err != nil {
				return err
			}
			if in.Ranking, err = fs.open(ranking); err != nil {
				return err
			}
			if in.Invoices, err = readDocuments(invoices); err != nil {
				return err
			}
			if in.Orders, err = readDocuments(orders); err != nil {
				return err
			}

			res, err := a.uc.Process(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.write(cmd, "process", res, out, func(ext string) string {
				return report.ProcessedFilename(a.uc.Now(), res.Set, ext)
			})
		},
	}
	cmd.Flags().StringVar(&weekly, "weekly", "", "planilla Faturamento por Produtos (obligatoria)")
	cmd.Flags().StringVar(&inventory, "inventory", "", "planilla Estoque Produtos com Valor (obligatoria)")
	cmd.Flags().StringVar(&ranking, "ranking", "", "planilla RankingFaturamento")
	cmd.Flags().StringArrayVar(&invoices, "nf", nil, "PDF de NF (repetible)")
	cmd.Flags().StringArrayVar(&orders, "pedido", nil, "PDF de pedido (repetible)")
	out.bind(cmd)
	return cmd
}

func (a *App) transformCommand() *cobra.Command {
	var (
		weekly           string
		invoices, orders []string
		out              outputFlags
	)
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Suma pedidos pendientes de NFs y pedidos al reporte de ventas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.exporter.Resolve(out.format); err != nil {
				return err
			}
			var fs files
			defer fs.close()

			in := report.TransformInput{}
			var err error
			if in.Sales, err = fs.open(weekly); err != nil {
				return err
			}
			if in.Invoices, err = readDocuments(invoices); err != nil {
				return err
			}
			if in.Orders, err = readDocuments(orders); err != nil {
				return err
			}

			res, err := a.uc.Transform(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.write(cmd, "transform", res, out, func(ext string) string {
				return report.TransformFilename + "." + ext
			})
		},
	}
	cmd.Flags().StringVar(&weekly, "weekly", "", "planilla Faturamento por Produtos (obligatoria)")
	cmd.Flags().StringArrayVar(&invoices, "nf", nil, "PDF de NF (repetible)")
	cmd.Flags().StringArrayVar(&orders, "pedido", nil, "PDF de pedido (repetible)")
	out.bind(cmd)
	return cmd
}

func (a *App) compareCommand() *cobra.Command {
	var (
		weekly, inventory, ranking string
		out                        outputFlags
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Concilia un reporte ya transformado con el inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.exporter.Resolve(out.format); err != nil {
				return err
			}
			var fs files
			defer fs.close()

			in := report.CompareInput{}
			var err error
			if in.Weekly, err = fs.open(weekly); err != nil {
				return err
			}
			if in.Inventory, err = fs.open(inventory); err != nil {
				return err
			}
			if in.Ranking, err = fs.open(ranking); err != nil {
				return err
			}

			res, err := a.uc.Compare(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.write(cmd, "compare", res, out, func(ext string) string {
				return report.ProcessedFilename(a.uc.Now(), res.Set, ext)
			})
		},
	}
	cmd.Flags().StringVar(&weekly, "weekly", "", "reporte semanal transformado (obligatorio)")
	cmd.Flags().StringVar(&inventory, "inventory", "", "planilla Estoque Produtos com Valor (obligatoria)")
	cmd.Flags().StringVar(&ranking, "ranking", "", "planilla RankingFaturamento")
	out.bind(cmd)
	return cmd
}
