// Package app arma el CLI relatorio: el mismo pipeline de la API ejecutado
// sobre archivos locales.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nicholasloureiro/backend-cs/internal/application/dto"
	"github.com/nicholasloureiro/backend-cs/internal/application/report"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

// App contiene las dependencias compartidas por los subcomandos.
type App struct {
	uc       *report.UseCase
	exporter *report.Exporter
	log      *logger.Logger
	version  string
}

// New construye el CLI.
func New(uc *report.UseCase, exporter *report.Exporter, log *logger.Logger, version string) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{uc: uc, exporter: exporter, log: log, version: version}
}

// Execute corre el comando raíz con los argumentos dados. El resumen JSON se
// escribe en stdout.
func (a *App) Execute(ctx context.Context, args []string, stdout io.Writer) error {
	root := a.rootCommand(stdout)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "relatorio",
		Short:         "Reporte semanal de stock",
		Long:          "Transforma el reporte de ventas con NFs y pedidos y lo concilia con el inventario de la tienda.",
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)

	root.AddCommand(
		a.processCommand(),
		a.transformCommand(),
		a.compareCommand(),
	)
	return root
}

// outputFlags flags comunes de salida.
type outputFlags struct {
	dir    string
	format string
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dir, "out", ".", "directorio de salida")
	cmd.Flags().StringVar(&o.format, "format", "", "formato de salida: xlsx, pdf, xml (por defecto el de la configuración)")
}

// files abre archivos de entrada y los cierra al final.
type files struct {
	closers []io.Closer
}

func (f *files) open(path string) (io.Reader, error) {
	if path == "" {
		return nil, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	f.closers = append(f.closers, fh)
	return fh, nil
}

func (f *files) close() {
	for _, c := range f.closers {
		_ = c.Close()
	}
}

func readDocuments(paths []string) ([]report.Document, error) {
	docs := make([]report.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", p, err)
		}
		docs = append(docs, report.Document{Name: filepath.Base(p), Data: data})
	}
	return docs, nil
}

// write exporta el resultado a disco e imprime el resumen.
func (a *App) write(cmd *cobra.Command, op string, res *report.Result, out outputFlags, name func(ext string) string) error {
	exported, err := a.exporter.Export(cmd.Context(), res.Set, out.format, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}
	path := filepath.Join(out.dir, exported.Filename)
	if err := os.WriteFile(path, exported.Data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	a.log.Info().Str("run_id", res.RunID).Str("op", op).Str("file", path).Msg("reporte escrito")

	summary := dto.NewReportSummary(res.RunID, op, res.Set)
	summary.Format = filepath.Ext(exported.Filename)[1:]
	summary.File = path
	summary.Bytes = len(exported.Data)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
