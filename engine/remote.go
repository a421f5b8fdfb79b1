package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher/agent"
	"strings"

	"github.com/rs/zerolog/log"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks the agent server at url for
// its moves. If the server fails or answers with an illegal move, the first
// legal move is played.
func NewRemoteAgent(url string) agent.Agent {
	return &remoteAgent{
		url:    strings.TrimRight(url, "/") + "/findmove",
		client: &http.Client{},
	}
}

func (a *remoteAgent) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	resp, err := a.requestMove(ctx, b)
	if err == nil && b.IsLegal(resp.Move) {
		return resp.Move, metrics.SearchMetric{Value: resp.Value, BestMove: resp.Move}
	}
	if err != nil {
		log.Warn().Err(err).Msg("remote agent failed")
	} else {
		log.Warn().Msgf("remote agent returned illegal move %s", resp.Move.Name())
	}

	fallback := b.LegalMoves()
	if len(fallback) == 0 {
		return game.NoMove, metrics.SearchMetric{BestMove: game.NoMove}
	}
	return fallback[0], metrics.SearchMetric{BestMove: fallback[0]}
}

// requestMove posts the current position to the agent server.
func (a *remoteAgent) requestMove(ctx context.Context, b *game.Board) (agent.MoveResponse, error) {
	var mr agent.MoveResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewBufferString(b.State()))
	if err != nil {
		return mr, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := a.client.Do(req)
	if err != nil {
		return mr, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return mr, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return mr, fmt.Errorf("failed to decode move: %w", err)
	}
	return mr, nil
}
