// seed importa productos desde un CSV al almacén PostgreSQL, en una sola transacción.
//
// Uso: go run ./cmd/seed [-charset windows-1250] productos.csv
// Columnas: name, category, price, quantity (cabecera obligatoria; el CSV de
// /api/reports/stock.csv también sirve). Las categorías se crean por nombre si faltan.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1250, iso-8859-2, iso-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-charset windows-1250] productos.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name}).Component("seed")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	in, err := decodeCharset(*charset, f)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}
	rows, err := report.ParseStockCSV(in)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.NewStore(pool).EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	var sum report.ImportSummary
	err = postgres.NewTxRunner(pool).Run(ctx, func(store repository.Store) error {
		var err error
		sum, err = report.ImportStock(ctx, store, rows)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("importación revertida")
	}
	log.Info().
		Int("products", sum.Products).
		Int("categories_created", sum.Categories).
		Msg("importación completa")
}

// decodeCharset convierte la entrada a UTF-8. Las hojas exportadas desde Excel
// en Polonia suelen venir en Windows-1250.
func decodeCharset(name string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1250", "cp1250":
		return transform.NewReader(r, charmap.Windows1250.NewDecoder()), nil
	case "iso-8859-2", "latin2":
		return transform.NewReader(r, charmap.ISO8859_2.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", name)
	}
}
