package gamemaster

import (
	"context"
	"errors"
	"qenolaba/communication"
	"qenolaba/game"

	"github.com/rs/zerolog/log"
)

const positionBuffer = 8

// GameMaster lets the computer play the sides it is responsible for in a
// session whose other moves arrive as positions from collaborators.
type GameMaster struct {
	Communicator communication.Communicator
	Session      *Session
	computer     map[game.Cell]bool
}

// NewGameMaster initializes a new GameMaster.
func NewGameMaster(comm communication.Communicator, session *Session, computerSides ...game.Cell) *GameMaster {
	gm := &GameMaster{
		Communicator: comm,
		Session:      session,
		computer:     map[game.Cell]bool{},
	}
	for _, side := range computerSides {
		gm.computer[side] = true
	}
	return gm
}

// RunGame is the game loop. It answers every position where a computer
// side is to move and returns when ctx is done.
func (gm *GameMaster) RunGame(ctx context.Context) error {
	positions := make(chan string, positionBuffer)
	gm.Communicator.OnPosition(func(diagram string) {
		select {
		case positions <- diagram:
		default:
			log.Warn().Msg("too many positions, dropping one")
		}
	})
	defer gm.Communicator.OnPosition(nil)

	gm.Communicator.Broadcast(gm.Session.State())
	for {
		if gm.CheckComputerMove() {
			m, err := gm.Session.ComputerMove(ctx)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				log.Warn().Err(err).Msg("computer move failed")
			} else {
				log.Info().Msgf("computer plays %s", m.Name())
				gm.Communicator.Broadcast(gm.Session.State())
				if gm.Session.IsGameOver() {
					log.Info().Msg("game over")
				}
				continue
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case diagram := <-positions:
			gm.applyPosition(diagram)
		}
	}
}

// CheckComputerMove reports whether the computer is to move in a running game.
func (gm *GameMaster) CheckComputerMove() bool {
	return !gm.Session.IsGameOver() && gm.computer[gm.Session.ToMove()]
}

func (gm *GameMaster) applyPosition(diagram string) {
	err := gm.Session.ApplyPosition(diagram)
	if errors.Is(err, ErrGameOver) {
		gm.Session.Init(game.Player1)
		err = gm.Session.ApplyPosition(diagram)
	}
	if err != nil {
		log.Warn().Err(err).Msg("ignoring position")
		return
	}
	log.Info().Msgf("received position, %v to move", gm.Session.ToMove())
}
