package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/config"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/logger"
	"github.com/openbiodata/belgraph/store"
)

// CacheCmd manages the namespace cache database.
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the namespace cache",
}

var cacheAddCmd = &cobra.Command{
	Use:   "add <url> <file.belns>",
	Short: "Cache a namespace file under the URL documents reference it by",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cache, err := openCache(cfg)
		if err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrapf(err, "open %s", args[1])
		}
		defer f.Close()

		ns, err := store.ParseNamespaceFile(f)
		if err != nil {
			return err
		}
		if err := cache.Put(args[0], ns.Keyword, ns.Values); err != nil {
			return err
		}

		pterm.Success.Printfln("Cached %s (%d names) as %s", ns.Keyword, len(ns.Values), args[0])
		return nil
	},
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached namespaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cache, err := openCache(cfg)
		if err != nil {
			return err
		}

		cached, err := cache.Cached()
		if err != nil {
			return err
		}
		if len(cached) == 0 {
			pterm.Info.Println("Cache is empty")
			return nil
		}

		data := pterm.TableData{{"Keyword", "URL"}}
		for url, keyword := range cached {
			data = append(data, []string{keyword, url})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func openCache(cfg *config.Config) (*store.Cache, error) {
	db, err := store.Open(cfg.Cache.Path, logger.Logger)
	if err != nil {
		return nil, err
	}
	return store.NewCache(db, logger.Logger)
}

func init() {
	CacheCmd.AddCommand(cacheAddCmd)
	CacheCmd.AddCommand(cacheLsCmd)
}
