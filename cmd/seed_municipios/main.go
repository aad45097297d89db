// seed_municipios popula a tabela municipalities a partir do CSV da DTB/IBGE.
//
// Uso:
//
//	go run ./cmd/seed_municipios municipios.csv            # grava direto no banco (config via env)
//	go run ./cmd/seed_municipios municipios.csv saida.sql  # só gera o script SQL
//
// O arquivo padrão do IBGE vem em ISO-8859-1; defina SEED_UTF8=true para arquivos já em UTF-8.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/nfe-emissor/internal/infrastructure/postgres"
	"github.com/jhoicas/nfe-emissor/pkg/config"
	"github.com/jhoicas/nfe-emissor/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_municipios <municipios.csv> [saida.sql]")
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := parseMunicipios(f, os.Getenv("SEED_UTF8") != "true")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ler CSV: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 2 {
		out, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "criar arquivo: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := writeSQL(out, items); err != nil {
			fmt.Fprintf(os.Stderr, "escrever SQL: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Gerado %s: %d municípios\n", os.Args[2], len(items))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.NewMunicipalityRepository(pool).BulkUpsert(ctx, items)
	if err != nil {
		log.Fatal().Err(err).Int("gravados", n).Msg("seed de municípios")
	}
	log.Info().Int("municipios", n).Msg("seed concluído")
}
