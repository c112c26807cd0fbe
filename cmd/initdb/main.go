// Command initdb performs the one-time bootstrap procedure (§6.2):
// create a fresh catalog directory and populate sys_class, sys_attribute,
// and sys_index for the three bootstrap relations, then build their
// fixed secondary indexes.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/litedb-go/litedb/catalog"
	"github.com/litedb-go/litedb/config"
	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/relstore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		catalogDir string
		mapSize    string
		maxTables  int
	)

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create a fresh litedb catalog",
		Long: `initdb creates the on-disk catalog directory and bootstraps
sys_class, sys_attribute, and sys_index for a new installation.

It fails if the catalog directory already exists, to avoid silently
clobbering a live database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var size datasize.ByteSize
			if err := size.UnmarshalText([]byte(mapSize)); err != nil {
				return fmt.Errorf("initdb: --map-size %q: %w", mapSize, err)
			}
			layout := config.Layout{MapSize: size, MaxTables: maxTables}
			return run(cmd.Context(), catalogDir, layout)
		},
	}

	cmd.Flags().StringVar(&catalogDir, "catalog-dir", config.CatalogDirName, "catalog directory to create")
	cmd.Flags().StringVar(&mapSize, "map-size", "1GB", "KV environment memory-map size")
	cmd.Flags().IntVar(&maxTables, "max-tables", 128, "maximum number of named sub-stores")

	return cmd
}

func run(ctx context.Context, catalogDir string, layout config.Layout) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()
	sugar := log.Sugar()

	if _, err := os.Stat(catalogDir); err == nil {
		return fmt.Errorf("initdb: catalog directory %q already exists", catalogDir)
	}

	lock, err := config.LockDir(catalogDir)
	if err != nil {
		return err
	}
	defer lock.Close()

	sugar.Infow("creating catalog", "dir", catalogDir, "map_size", layout.MapSize, "max_tables", layout.MaxTables)

	env, err := kv.Open(filepath.Join(catalogDir, "data.mdbx"), kv.Options{
		MapSize:   layout.MapSize.Bytes(),
		MaxTables: layout.MaxTables,
		Log:       sugar,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	kvTxn, err := env.Begin(ctx, true)
	if err != nil {
		return err
	}
	txn := relstore.NewTxn(kvTxn, catalog.RelationLoader{})

	if err := catalog.Bootstrap(txn); err != nil {
		txn.Abort()
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}

	sugar.Infow("catalog bootstrapped", "dir", catalogDir)
	return nil
}
