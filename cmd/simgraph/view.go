package main

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-simgraph/pkg/config"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/relayout"
	"github.com/dd0wney/cluso-simgraph/pkg/visualization"
	"github.com/spf13/cobra"
)

// layoutMsg carries a finished layout. seq orders layouts by when they
// were started, since resize and config reload run them concurrently.
type layoutMsg struct {
	seq uint64
	viz *visualization.Visualization
	err error
}

type configMsg struct {
	cfg *config.Config
}

// session is shared between the UI loop and the relayout goroutine
type session struct {
	records  []graph.Record
	registry *metrics.Registry
	logger   logging.Logger
	send     func(tea.Msg)

	mu     sync.Mutex
	engine *visualization.Engine
	height float64
	seq    uint64
}

func newSession(records []graph.Record, cfg *config.Config, logger logging.Logger, reg *metrics.Registry) (*session, error) {
	s := &session{
		records:  records,
		registry: reg,
		logger:   logger,
		send:     func(tea.Msg) {},
	}
	if err := s.reconfigure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) reconfigure(cfg *config.Config) error {
	layout, err := cfg.LayoutConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.FilterOptions()
	if err != nil {
		return err
	}
	engine, err := visualization.NewEngine(layout, opts, s.logger, s.registry)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	return nil
}

func (s *session) setHeight(h float64) {
	s.mu.Lock()
	s.height = h
	s.mu.Unlock()
}

// layout runs a fresh pipeline so the UI never sees a graph mid-simulation
func (s *session) layout(width float64) layoutMsg {
	s.mu.Lock()
	engine := s.engine.WithCanvas(width, s.height)
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	viz, err := engine.Layout(s.records)
	return layoutMsg{seq: seq, viz: viz, err: err}
}

// relayout is the debounced resize handler
func (s *session) relayout(ctx context.Context, width float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := s.layout(width)
	s.send(msg)
	return msg.err
}

func viewCmd(flags *globalFlags) *cobra.Command {
	var (
		input   string
		logFile string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the network interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return fail(err)
			}

			logger := logging.NewNopLogger()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fail(err)
				}
				defer f.Close()
				logger = logging.NewJSONLogger(f, cfg.Level())
			}

			// the terminal owns stdin while the program runs
			if input == "" || input == "-" {
				return fail(errors.New("view needs an --input file"))
			}
			records, err := graph.ReadRecordsFile(input)
			if err != nil {
				return fail(err)
			}

			reg := metrics.NewRegistry()
			sess, err := newSession(records, cfg, logger, reg)
			if err != nil {
				return fail(err)
			}

			db := relayout.New(sess.relayout,
				relayout.WithWindow(cfg.Relayout.Window),
				relayout.WithLogger(logger),
				relayout.WithMetrics(reg))

			p := tea.NewProgram(newModel(sess, db), tea.WithAltScreen())
			sess.send = p.Send

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if watch && flags.configPath != "" {
				go func() {
					err := config.Watch(ctx, flags.configPath, logger, func(c *config.Config) {
						p.Send(configMsg{cfg: c})
					})
					if err != nil {
						logger.Error("config watch stopped", logging.Error(err))
					}
				}()
			}

			_, runErr := p.Run()

			closeCtx, closeCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer closeCancel()
			if err := db.Close(closeCtx); err != nil {
				logger.Warn("relayout did not stop cleanly", logging.Error(err))
			}

			if runErr != nil {
				return fail(runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Records file (JSON or YAML)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the config file when it changes")

	return cmd
}
