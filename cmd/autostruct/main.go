// Command autostruct generates Go model types from a database schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/autostruct/compiler/gen"
	"github.com/syssam/autostruct/config"
	"github.com/syssam/autostruct/dialect"
	"github.com/syssam/autostruct/dialect/mysql"
	"github.com/syssam/autostruct/dialect/postgres"
	"github.com/syssam/autostruct/dialect/sqlite"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
	"github.com/syssam/autostruct/schema/snapshot"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to a yaml config file")
		url          = flag.String("url", "", "database connection string (falls back to DATABASE_URL)")
		dialectName  = flag.String("dialect", "", "database dialect: postgres, mysql or sqlite (inferred from the url when empty)")
		schemaName   = flag.String("schema", "", "catalog schema to introspect")
		out          = flag.String("out", "", "output directory for generated files")
		pkg          = flag.String("package", "", "package name of generated files")
		exclude      = flag.String("exclude", "", "comma-separated table names to skip")
		singular     = flag.Bool("singular", false, "generate singular entity names")
		strict       = flag.Bool("strict", false, "fail on native types the mapper cannot classify")
		tag          = flag.String("tag", "", "struct tag key emitted on fields, e.g. db")
		format       = flag.Bool("format", true, "format generated files")
		timeout      = flag.Duration("timeout", 3*time.Second, "schema fetch timeout")
		snapshotPath = flag.String("snapshot", "", "write the fetched schema to this snapshot file")
		fromSnapshot = flag.String("from-snapshot", "", "generate from a snapshot file instead of a live database")
		watch        = flag.Bool("watch", false, "with -from-snapshot: regenerate whenever the snapshot changes")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *url != "" {
		cfg.Database.URL = *url
	}
	if *dialectName != "" {
		cfg.Database.Dialect = *dialectName
	}
	if *schemaName != "" {
		cfg.Database.Schema = *schemaName
	}
	if *exclude != "" {
		cfg.Database.Exclude = strings.Split(*exclude, ",")
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *pkg != "" {
		cfg.Output.Package = *pkg
	}
	if *singular {
		cfg.Output.Singular = true
	}
	if *strict {
		cfg.Output.Strict = true
	}
	if *tag != "" {
		cfg.Output.StructTag = *tag
	}

	ctx := context.Background()
	if *fromSnapshot != "" {
		if err := runFromSnapshot(ctx, cfg, *fromSnapshot, *format); err != nil {
			slog.Error("generation failed", "error", err)
			os.Exit(1)
		}
		if *watch {
			if err := watchSnapshot(ctx, cfg, *fromSnapshot, *format); err != nil {
				slog.Error("watch failed", "error", err)
				os.Exit(1)
			}
		}
		return
	}
	if err := run(ctx, cfg, *timeout, *snapshotPath, *format); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

// run fetches the schema from a live database, optionally snapshots it, and
// generates the models.
func run(ctx context.Context, cfg *config.Config, timeout time.Duration, snapshotPath string, format bool) error {
	url, err := cfg.Database.ConnectionString()
	if err != nil {
		return err
	}
	name := cfg.Database.Dialect
	if name == "" {
		if name, err = dialect.FromDSN(url); err != nil {
			return err
		}
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	drv, err := openDriver(fetchCtx, name, url, cfg)
	if err != nil {
		return err
	}
	defer drv.Close()
	db, err := drv.FetchSchema(fetchCtx)
	if err != nil {
		return err
	}
	slog.Info("schema fetched", "dialect", name,
		"tables", len(db.Tables), "enums", len(db.Enums), "composites", len(db.CompositeTypes))
	if snapshotPath != "" {
		snap := snapshot.New(name, db)
		if err := snap.Save(snapshotPath); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", snapshotPath, "id", snap.ID)
	}
	return generate(ctx, cfg, drv, db, format)
}

// runFromSnapshot regenerates models from a previously saved schema without
// touching a database.
func runFromSnapshot(ctx context.Context, cfg *config.Config, path string, format bool) error {
	snap, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	mapper, err := mapperFor(snap.Dialect)
	if err != nil {
		return err
	}
	slog.Info("schema loaded from snapshot", "path", path, "dialect", snap.Dialect, "id", snap.ID)
	return generate(ctx, cfg, mapper, snap.Schema, format)
}

// watchSnapshot regenerates whenever the snapshot file is rewritten.
func watchSnapshot(ctx context.Context, cfg *config.Config, path string, format bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	slog.Info("watching snapshot", "path", path)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := runFromSnapshot(ctx, cfg, path, format); err != nil {
				slog.Error("regeneration failed", "error", err)
				continue
			}
			slog.Info("regenerated", "trigger", ev.Op.String())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func generate(ctx context.Context, cfg *config.Config, mapper gen.TypeMapper, db *schema.Database, format bool) error {
	opts := []gen.Option{}
	if cfg.Output.Singular {
		opts = append(opts, gen.WithSingularNames())
	}
	if cfg.Output.Strict {
		opts = append(opts, gen.WithStrictTypes())
	}
	if cfg.Output.StructTag != "" {
		opts = append(opts, gen.WithStructTag(cfg.Output.StructTag))
	}
	g, err := gen.NewGenerator(mapper, opts...)
	if err != nil {
		return err
	}
	snippets, err := g.Generate(ctx, db)
	if err != nil {
		return err
	}
	w := &gen.Writer{
		Dir:     cfg.Output.Dir,
		Package: cfg.Output.Package,
		Header:  cfg.Output.Header,
		Format:  format,
	}
	if err := w.Write(ctx, snippets); err != nil {
		return err
	}
	slog.Info("models generated", "dir", cfg.Output.Dir, "files", len(snippets)+1)
	return nil
}

// closableDriver is a Driver that owns its database connection.
type closableDriver interface {
	dialect.Driver
	Close() error
}

func openDriver(ctx context.Context, name, url string, cfg *config.Config) (closableDriver, error) {
	switch name {
	case dialect.Postgres:
		b := postgres.NewBuilder().TableSchema(cfg.Database.Schema).Exclude(cfg.Database.Exclude...)
		return b.Connect(ctx, url)
	case dialect.MySQL:
		b := mysql.NewBuilder().TableSchema(cfg.Database.Schema).Exclude(cfg.Database.Exclude...)
		return b.Connect(ctx, url)
	case dialect.SQLite:
		b := sqlite.NewBuilder().Exclude(cfg.Database.Exclude...)
		return b.Connect(ctx, url)
	default:
		return nil, fmt.Errorf("%w: %s", dialect.ErrUnsupportedDialect, name)
	}
}

// mapperFunc adapts a dialect's package-level mapping function to the
// generator's TypeMapper interface.
type mapperFunc func(string) *field.TypeInfo

func (f mapperFunc) MapType(name string) *field.TypeInfo { return f(name) }

func mapperFor(name string) (gen.TypeMapper, error) {
	switch name {
	case dialect.Postgres:
		return mapperFunc(postgres.MapType), nil
	case dialect.MySQL:
		return mapperFunc(mysql.MapType), nil
	case dialect.SQLite:
		return mapperFunc(sqlite.MapType), nil
	default:
		return nil, fmt.Errorf("%w: %s", dialect.ErrUnsupportedDialect, name)
	}
}
