package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ashwch/assist/internal/action"
	"github.com/ashwch/assist/internal/assistant"
	"github.com/ashwch/assist/internal/console"
	"github.com/ashwch/assist/internal/journal"
	"github.com/ashwch/assist/internal/routine"
	"github.com/ashwch/assist/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// shutdownGrace bounds how long exit waits for routines still in flight.
const shutdownGrace = routine.StartupDelay + 3*time.Second

var stdoutIsTerminal = func() bool { return console.IsTerminal(os.Stdout) }

// runSession wires the assistant to the terminal and runs the dialog.
func (a *app) runSession(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The reader, the loop and routine goroutines all write through out.
	out := console.NewSyncWriter(cmd.OutOrStdout())
	in := cmd.InOrStdin()
	reader := console.NewReader(in, out)

	interactive := in == os.Stdin && console.StdinIsInteractive() && stdoutIsTerminal()
	backend := ui.Resolve(a.cfg.UI.Backend, interactive)

	msgs := a.catalog.Messages
	opts := assistant.Options{
		Prompter:  reader,
		Picker:    ui.Picker{Backend: backend},
		Confirmer: ui.Confirmer{Backend: backend, Yes: msgs.ConfirmYes, No: msgs.ConfirmNo},
		Out:       out,
		Prompt:    a.cfg.UI.Prompt,
		Catalog:   a.catalog,
		Actions: action.DefaultRegistry(action.Labels{
			Flashlight:   msgs.ActionFlashlight,
			FlashlightOn: msgs.FlashlightOn,
		}),
		Logger:        a.logger,
		ConfirmRemove: a.cfg.Routines.ConfirmRemove,
	}
	if a.cfg.Journal.Enabled {
		j, err := journal.Open()
		if err != nil {
			a.logger.Warn("journal disabled", zap.Error(err))
		} else {
			opts.Journal = j
			a.logger.Debug("journal opened", zap.String("path", j.Path()), zap.String("session_id", j.SessionID()))
		}
	}

	assist, err := assistant.New(opts)
	if err != nil {
		return err
	}

	if a.cfg.UI.Banner && !a.noBanner {
		if interactive {
			fmt.Fprintln(out, ui.Banner(msgs.BannerTitle, msgs.BannerCommands))
		} else {
			fmt.Fprintln(out, ui.PlainBanner(msgs.BannerTitle, msgs.BannerCommands))
		}
	}

	return a.loop(ctx, assist, reader, out)
}

// loop dispatches lines until exit or EOF, then gives running routines a
// bounded grace period to finish.
func (a *app) loop(ctx context.Context, assist *assistant.Assistant, reader *console.Reader, out io.Writer) error {
	var loopErr error
	for assist.CheckWorking() {
		if ctx.Err() != nil {
			break
		}
		line, err := reader.Input(a.cfg.UI.Prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				loopErr = err
			}
			break
		}
		if _, _, err := assist.ProcessCommand(line); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if !errors.Is(err, routine.ErrAlreadyStarted) {
				fmt.Fprintf(out, "assist: %v\n", err)
			}
		}
	}

	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	if err := assist.Wait(waitCtx); err != nil {
		a.logger.Warn("routines still running at exit", zap.Error(err))
	}
	return loopErr
}
