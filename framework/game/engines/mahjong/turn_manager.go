package mahjong

import (
	"fmt"
	"math/rand"
)

type RoundState int

const (
	StateInitial         RoundState = iota // 起手 13 张
	StateAwaitingDraw                      // 等待摸牌
	StateCheck                             // 14 张，判定是否和牌
	StateAwaitingDiscard                   // 等待弃牌
	StateSuccess                           // 达成目标牌型
	StateExhausted                         // 牌山或摸牌预算耗尽
	StateFailure                           // 失败
)

func (s RoundState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAwaitingDraw:
		return "awaiting-draw"
	case StateCheck:
		return "check"
	case StateAwaitingDiscard:
		return "awaiting-discard"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// InitialHandSize 起手张数
const InitialHandSize = HandSize - 1

type RoundConfig struct {
	Shape      Shape
	DrawBudget int  // 循环内最多摸牌次数
	FinalDraw  bool // 预算用完后是否再摸一张做最终判定
}

// DefaultRoundConfig 打烂类 20 巡，七对子 21 巡 + 最后一摸
func DefaultRoundConfig(shape Shape) RoundConfig {
	return RoundConfig{
		Shape:      shape,
		DrawBudget: shape.DefaultDrawBudget(),
		FinalDraw:  shape.DefaultFinalDraw(),
	}
}

type RoundResult struct {
	Success    bool
	Draws      int        // 实际摸牌次数
	FinalState RoundState // StateSuccess 或 StateFailure
	Hand       []Tile     // 终止时的手牌
	Discards   []Tile     // 依次打出的牌
	WallEmpty  bool       // 因牌山摸空而结束
}

// Round 一局模拟，只持有本局的牌山与手牌，不跨局共享状态
type Round struct {
	cfg    RoundConfig
	wall   *Wall
	policy DiscardPolicy

	state    RoundState
	hand     []Tile
	draws    int
	discards []Tile
	exhaust  bool // 是否因牌山耗尽终止
}

// NewRound 使用给定牌山和弃牌策略构造一局
func NewRound(cfg RoundConfig, wall *Wall, policy DiscardPolicy) (*Round, error) {
	if !cfg.Shape.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, cfg.Shape)
	}
	if cfg.DrawBudget < 0 {
		return nil, fmt.Errorf("draw budget must not be negative, got %d", cfg.DrawBudget)
	}
	if policy == nil {
		return nil, fmt.Errorf("round needs a discard policy")
	}
	return &Round{
		cfg:    cfg,
		wall:   wall,
		policy: policy,
		state:  StateInitial,
	}, nil
}

// SimulateRound 新洗一副牌山并跑完一局
func SimulateRound(cfg RoundConfig, vocab *Vocabulary, searcher *Searcher, rng *rand.Rand) (RoundResult, error) {
	policy, err := NewDiscardPolicy(cfg.Shape, searcher, rng)
	if err != nil {
		return RoundResult{}, err
	}
	r, err := NewRound(cfg, NewShuffledWall(vocab, rng), policy)
	if err != nil {
		return RoundResult{}, err
	}
	return r.Run()
}

// Run 驱动状态机直到成功或失败
func (r *Round) Run() (RoundResult, error) {
	for {
		var err error
		switch r.state {
		case StateInitial:
			err = r.deal()
		case StateAwaitingDraw:
			r.drawOne()
		case StateCheck:
			err = r.check()
		case StateAwaitingDiscard:
			err = r.discardOne()
		case StateExhausted:
			r.state = StateFailure
		case StateSuccess, StateFailure:
			return r.result(), nil
		default:
			return r.result(), fmt.Errorf("round in unknown state %d", r.state)
		}
		if err != nil {
			r.state = StateFailure
			return r.result(), err
		}
	}
}

func (r *Round) deal() error {
	hand, err := r.wall.DrawN(InitialHandSize)
	if err != nil {
		return err
	}
	r.hand = make([]Tile, 0, HandSize)
	r.hand = append(r.hand, hand...)
	r.state = StateAwaitingDraw
	return nil
}

// drawLimit 摸牌总上限，最后一摸计入
func (r *Round) drawLimit() int {
	if r.cfg.FinalDraw {
		return r.cfg.DrawBudget + 1
	}
	return r.cfg.DrawBudget
}

func (r *Round) drawOne() {
	if r.draws >= r.drawLimit() {
		r.state = StateExhausted
		return
	}
	t, ok := r.wall.Draw()
	if !ok {
		r.exhaust = true
		r.state = StateExhausted
		return
	}
	r.hand = append(r.hand, t)
	r.draws++
	r.state = StateCheck
}

func (r *Round) check() error {
	ok, err := Satisfies(r.hand, r.cfg.Shape)
	if err != nil {
		return err
	}
	switch {
	case ok:
		r.state = StateSuccess
	case r.draws > r.cfg.DrawBudget:
		// 最后一摸仍未和牌，不再弃牌
		r.state = StateExhausted
	default:
		r.state = StateAwaitingDiscard
	}
	return nil
}

func (r *Round) discardOne() error {
	i, err := r.policy.Choose(r.hand)
	if err != nil {
		return err
	}
	r.discards = append(r.discards, r.hand[i])
	r.hand = append(r.hand[:i], r.hand[i+1:]...)
	r.state = StateAwaitingDraw
	return nil
}

func (r *Round) result() RoundResult {
	hand := make([]Tile, len(r.hand))
	copy(hand, r.hand)
	return RoundResult{
		Success:    r.state == StateSuccess,
		Draws:      r.draws,
		FinalState: r.state,
		Hand:       hand,
		Discards:   append([]Tile(nil), r.discards...),
		WallEmpty:  r.exhaust,
	}
}
