/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nuts-foundation/nuts-pex/core"
	"github.com/nuts-foundation/nuts-pex/pex"
	pexAPI "github.com/nuts-foundation/nuts-pex/pex/api/v1"
	pexCmd "github.com/nuts-foundation/nuts-pex/pex/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

const shutdownTimeout = 5 * time.Second

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nuts-pex",
		Short: "Nuts PEX executable which can be used to run the Presentation Exchange server or evaluate definitions locally.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the Nuts PEX server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Info("Starting server with config:")
	logrus.Info(system.Config.PrintConfig())

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}

	// start engines
	if err := system.Start(); err != nil {
		return err
	}
	defer func() {
		if err := system.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error shutting down system")
		}
	}()

	// start interfaces
	echoServer, err := system.EchoCreator(system.Config.HTTP)
	if err != nil {
		return fmt.Errorf("unable to create HTTP server: %w", err)
	}
	for _, router := range system.Routers {
		router.Routes(echoServer)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- echoServer.Start(system.Config.HTTP.Address)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down server")
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := echoServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logrus.WithError(shutdownErr).Error("Error shutting down HTTP server")
	}
	return err
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	addFlagSets(command)
	return command
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()
	// Create instances
	metricsInstance := core.NewMetricsEngine()
	pexInstance := pex.NewPEXInstance()

	// Register HTTP routes
	system.RegisterRoutes(metricsInstance)
	system.RegisterRoutes(&pexAPI.Wrapper{Evaluator: pexInstance})

	// Register engines
	system.RegisterEngine(metricsInstance)
	system.RegisterEngine(pexInstance)
	return system
}

// Execute creates the root command for the system and executes it, until the command completes or the context is cancelled.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	return command.ExecuteContext(ctx)
}

func addSubCommands(system *core.System, root *cobra.Command) {
	root.AddCommand(pexCmd.Cmd())
	root.AddCommand(createServerCommand(system))
	root.AddCommand(createPrintConfigCommand(system))
}

func addFlagSets(cmd *cobra.Command) {
	for _, flagSet := range serverFlagSets() {
		cmd.PersistentFlags().AddFlagSet(flagSet)
	}
}

func serverFlagSets() []*pflag.FlagSet {
	return []*pflag.FlagSet{
		core.FlagSet(),
		pexCmd.FlagSet(),
	}
}
