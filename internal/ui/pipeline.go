package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"statboard/internal/ai"
	"statboard/internal/config"
	"statboard/internal/export"
	"statboard/internal/model"
	"statboard/internal/source"
	"statboard/internal/table"
	"statboard/internal/util/logx"
)

// ApplyConfig installs the initial sort, column filters and where expression
// from the command line.
func ApplyConfig(t *table.Table, cfg *config.Config) error {
	if cfg.Sort != "" {
		s, err := table.ParseSortSpec(cfg.Sort)
		if err != nil {
			return err
		}
		if err := t.ApplySort(s); err != nil {
			return err
		}
	}
	for _, f := range cfg.Filters {
		if err := t.SetColumnFilter(f.Column, f.Value); err != nil {
			return fmt.Errorf("filter %d: %w", f.Column, err)
		}
	}
	if cfg.Where != "" {
		if err := t.SetWhere(cfg.Where); err != nil {
			return fmt.Errorf("where: %w", err)
		}
	}
	return nil
}

func loadCmd(ctx context.Context, opts source.Options) tea.Cmd {
	return func() tea.Msg {
		p, err := source.Load(ctx, opts)
		if err != nil {
			return loadedMsg{err: err}
		}
		rows, totals, err := model.BuildRows(p)
		return loadedMsg{rows: rows, totals: totals, err: err}
	}
}

func followCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		ch, err := source.Follow(ctx, path)
		if err != nil {
			return toastMsg{text: "follow: " + err.Error()}
		}
		return followStartedMsg{ch: ch}
	}
}

func waitForUpdate(ch <-chan source.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return toastMsg{text: "follow stopped"}
		}
		return followMsg{update: u}
	}
}

func explainCmd(ctx context.Context, cli *ai.Client, cache *ai.Cache, modelName, prompt string) tea.Cmd {
	return func() tea.Msg {
		text, err := cli.Summarize(ctx, prompt)
		if err == nil {
			if cerr := cache.Put(modelName, prompt, text); cerr != nil {
				logx.Warnf("ai: cache: %v", cerr)
			}
		}
		return explainDoneMsg{text: text, err: err}
	}
}

// onLoaded moves the model out of the loading phase.
func (m *Model) onLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		var pe *model.PayloadError
		if errors.As(msg.err, &pe) {
			m.phase = phasePayloadError
			m.errText = pe.Message
			logx.Warnf("payload error: %s", pe.Message)
		} else {
			m.phase = phaseFailed
			m.errText = msg.err.Error()
			logx.Errorf("load failed: %v", msg.err)
		}
		return nil
	}
	m.tbl = table.New(msg.rows, msg.totals)
	if err := ApplyConfig(m.tbl, m.cfg); err != nil {
		m.lastMsg = err.Error()
		logx.Warnf("initial view: %v", err)
	}
	m.syncInputs()
	m.phase = phaseReady
	m.refresh()
	if m.cfg.Follow && m.opts.Kind == source.KindFile {
		return followCmd(m.ctx, m.opts.Path)
	}
	return nil
}

// onFollow swaps in the rows of a new snapshot. Failing snapshots keep the
// current rows.
func (m *Model) onFollow(u source.Update) {
	if u.Err != nil {
		logx.Warnf("follow: %v", u.Err)
		m.lastMsg = "ignored snapshot: " + u.Err.Error()
		return
	}
	rows, totals, err := model.BuildRows(u.Payload)
	if err != nil {
		logx.Warnf("follow: %v", err)
		m.lastMsg = "ignored snapshot: " + err.Error()
		return
	}
	m.tbl.Replace(rows, totals)
	m.reloads++
	m.lastMsg = fmt.Sprintf("reloaded at %s", u.When.Format("15:04:05"))
	m.refresh()
}

func (m *Model) exportView() {
	format := m.cfg.ExportFormat
	if format == "" {
		format = "csv"
	}
	out := m.cfg.ExportOut
	if out == "" {
		ext := format
		if ext == "json" {
			ext = "ndjson"
		}
		out = filepath.Join(".", fmt.Sprintf("statboard-%s.%s", time.Now().Format("20060102-150405"), ext))
	}
	if err := export.Write(format, out, m.tbl); err != nil {
		m.lastMsg = "export failed: " + err.Error()
		logx.Errorf("export: %v", err)
		return
	}
	m.lastMsg = fmt.Sprintf("exported %d rows to %s", m.tbl.VisibleCount(), out)
	logx.Infof("export: format=%s out=%s", format, out)
}

func (m *Model) startExplain() tea.Cmd {
	if m.cfg.Offline {
		m.lastMsg = "summaries disabled (offline)"
		return nil
	}
	key := m.cfg.OpenAIKey()
	if strings.TrimSpace(key) == "" {
		m.lastMsg = "OPENAI_API_KEY not set"
		return nil
	}
	prompt := ai.BuildPrompt(m.tbl, 60)
	if text, ok := m.summaries.Get(m.cfg.OpenAIModel, prompt); ok {
		m.openModal(modalExplain, "Summary (cached)", text)
		return nil
	}
	cli := ai.NewClient(key, m.cfg.OpenAIBase, m.cfg.OpenAIModel, time.Duration(m.cfg.OpenAITimeoutSec)*time.Second)
	m.netBusy = true
	m.lastMsg = "asking " + m.cfg.OpenAIModel + "..."
	return tea.Batch(m.spin.Tick, explainCmd(m.ctx, cli, m.summaries, m.cfg.OpenAIModel, prompt))
}
