package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/config"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file with the current flags."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Config.Path
	_, err := os.Stat(path)
	switch {
	case err == nil && !c.Force:
		ctx.Printf("Config file already exists at: %s (use --force to overwrite)\n", path)
	case err == nil || os.IsNotExist(err):
		if err := config.WriteFile(path, config.FileFromConfig(ctx.Config)); err != nil {
			return err
		}
		ctx.Printf("Wrote config file: %s\n", path)
	default:
		return fmt.Errorf("failed to access config file: %w", err)
	}

	if err := ctx.Prefs.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitdash preferences at: %s\n", ctx.Prefs.GetConfigPath())
	ctx.Printf("Backend API: %s\n", ctx.Config.APIURL)
	return nil
}
