package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/matheus3301/easekit/internal/daemon"
	"github.com/matheus3301/easekit/internal/profile"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	configFlag := flag.String("config", "", "config file (default ~/.easekit/config.toml)")
	socketFlag := flag.String("socket", "", "socket path (default <profile dir>/daemon.sock)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		daemon.Module(daemon.Params{
			ProfileName: profileName,
			SocketPath:  *socketFlag,
			ConfigPath:  *configFlag,
		}),
		// Container events go to the daemon log instead of stderr.
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	).Run()
}
