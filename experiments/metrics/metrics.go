package metrics

import "time"

// AgentConfig identifies one player configuration under comparison.
type AgentConfig struct {
	ID        int
	Kind      string // "random", "minimax" or "mcts"
	Depth     int    // minimax only
	Evaluator string // minimax only
	Rounds    int    // mcts only
	Duration  time.Duration
	Rollout   string // mcts only
}

// GameMetric covers one finished game.
type GameMetric struct {
	StartingAgent int // AgentConfig.ID playing Black
	Winner        string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

// MoveMetric covers one decision within a game.
type MoveMetric struct {
	Step     int
	Side     string
	Move     string
	Duration time.Duration
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
