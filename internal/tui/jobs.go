package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/avashist/hilite/internal/llm"
	"github.com/avashist/hilite/internal/store"
)

const generationTimeout = 3 * time.Minute

type postResultMsg struct {
	seq  int
	post string
	err  error
}

// generatePostCmd runs the whole generation job off the update loop. The
// entry is persisted before drafting so it survives a generation failure;
// the post is attached afterwards only when the create returned an id. Store
// failures are logged and swallowed, never surfaced to the user.
func generatePostCmd(seq int, client llm.Client, st *store.Client, logger *log.Logger, flat, excerpt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		entryID := ""
		if st.Enabled() {
			id, err := st.Create(ctx, flat, excerpt)
			if err != nil {
				logger.Warn("store create failed", "err", err)
			} else {
				entryID = id
			}
		}

		post, err := client.GeneratePost(ctx, flat, excerpt)
		if err != nil {
			logger.Error("generation failed", "backend", client.Name(), "err", err)
			return postResultMsg{seq: seq, err: err}
		}

		if entryID != "" {
			if err := st.AttachPost(ctx, entryID, post); err != nil {
				logger.Warn("store update failed", "id", entryID, "err", err)
			}
		}
		return postResultMsg{seq: seq, post: post}
	}
}
