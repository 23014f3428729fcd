package cli

import (
	"fmt"

	"github.com/julianstephens/daylit-engine/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	path, err := backup.NewManager(ctx.Store.Path()).Create()
	if err != nil {
		return err
	}
	ctx.printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.printf("No backups in %s\n", mgr.Dir())
		return nil
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Backups in %s:", mgr.Dir())))
	for _, b := range backups {
		ctx.printf("  %s  %s  %d KB\n", b.Timestamp.Format("2006-01-02 15:04:05"), dateStyle.Render(b.Path), b.Size/1024)
	}
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Backup file to restore." type:"existingfile"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	// the database file is replaced, so no connection may stay open
	if err := ctx.Store.Close(); err != nil {
		return err
	}
	previous, err := backup.NewManager(ctx.Store.Path()).Restore(c.File)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.printf("Previous database saved to %s\n", previous)
	}
	ctx.println(okStyle.Render("Database restored from " + c.File))
	return nil
}
