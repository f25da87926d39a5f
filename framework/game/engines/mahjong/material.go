package mahjong

import (
	"fmt"
	"strconv"
	"strings"
)

type Family uint8

const (
	FamilyMan   Family = iota // 万子
	FamilyPin                 // 筒子
	FamilySo                  // 索子
	FamilyHonor               // 字牌
)

const (
	NumberedRanks = 9
	HonorRanks    = 7
	NumTileTypes  = 3*NumberedRanks + HonorRanks // 34
	CopiesPerType = 4
	WallSize      = NumTileTypes * CopiesPerType // 136
)

var familySuffix = [...]byte{'m', 'p', 's', 'z'}

func (f Family) IsNumbered() bool {
	return f <= FamilySo
}

// MaxRank 该花色的最大点数
func (f Family) MaxRank() int {
	switch {
	case f.IsNumbered():
		return NumberedRanks
	case f == FamilyHonor:
		return HonorRanks
	default:
		return 0
	}
}

func (f Family) String() string {
	if int(f) < len(familySuffix) {
		return string(familySuffix[f])
	}
	return "?"
}

// TileType 牌种，0-33 连续编号
type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)，按 1z-7z 排列
	East
	South
	West
	North
	White
	Green
	Red
)

func (t TileType) IsValid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) Tile() Tile {
	if !t.IsValid() {
		return Tile{Family: FamilyHonor + 1}
	}
	return Tile{
		Family: Family(int(t) / NumberedRanks),
		Rank:   int(t)%NumberedRanks + 1,
	}
}

func (t TileType) String() string {
	return t.Tile().String()
}

// Tile 一张牌只由花色和点数决定，相同的牌没有身份区别
type Tile struct {
	Family Family
	Rank   int
}

func NewTile(family Family, rank int) Tile {
	return Tile{Family: family, Rank: rank}
}

func (t Tile) IsValid() bool {
	return t.Family <= FamilyHonor && t.Rank >= 1 && t.Rank <= t.Family.MaxRank()
}

func (t Tile) IsNumbered() bool {
	return t.Family.IsNumbered()
}

func (t Tile) IsHonor() bool {
	return t.Family == FamilyHonor
}

// IsTerminal 幺九牌：字牌或 1、9 数牌
func (t Tile) IsTerminal() bool {
	if t.IsHonor() {
		return true
	}
	return t.Rank == 1 || t.Rank == NumberedRanks
}

// Type 转换为 0-33 的牌种编号，非法牌返回 -1
func (t Tile) Type() TileType {
	if !t.IsValid() {
		return -1
	}
	return TileType(int(t.Family)*NumberedRanks + t.Rank - 1)
}

func (t Tile) String() string {
	return strconv.Itoa(t.Rank) + t.Family.String()
}

// CompareTiles 先比花色再比点数，可直接用于 slices.SortFunc
func CompareTiles(a, b Tile) int {
	if a.Family != b.Family {
		if a.Family < b.Family {
			return -1
		}
		return 1
	}
	return a.Rank - b.Rank
}

// ParseTile 解析 "5m"、"7z" 形式的牌
func ParseTile(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Tile{}, fmt.Errorf("%w: %q", ErrMalformedTile, s)
	}
	suffix := s[len(s)-1]
	family := Family(255)
	for i, c := range familySuffix {
		if c == suffix {
			family = Family(i)
			break
		}
	}
	if family == 255 {
		return Tile{}, fmt.Errorf("%w: unknown suffix in %q", ErrMalformedTile, s)
	}
	rank, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %q", ErrMalformedTile, s)
	}
	t := Tile{Family: family, Rank: rank}
	if !t.IsValid() {
		return Tile{}, fmt.Errorf("%w: rank out of range in %q", ErrMalformedTile, s)
	}
	return t, nil
}

// ParseHand 严格解析，任何非法牌都会返回错误
func ParseHand(tokens []string) ([]Tile, error) {
	hand := make([]Tile, 0, len(tokens))
	for _, tok := range tokens {
		t, err := ParseTile(tok)
		if err != nil {
			return nil, err
		}
		hand = append(hand, t)
	}
	return hand, nil
}

// ParseHandLenient 跳过非法牌并把它们原样返回，由调用方决定是否告警
func ParseHandLenient(tokens []string) (hand []Tile, skipped []string) {
	hand = make([]Tile, 0, len(tokens))
	for _, tok := range tokens {
		t, err := ParseTile(tok)
		if err != nil {
			skipped = append(skipped, tok)
			continue
		}
		hand = append(hand, t)
	}
	return hand, skipped
}

// SplitTiles 把 "1m4m7m 1z" 或 "1m,4m" 拆成单张牌的 token
func SplitTiles(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var out []string
	for _, f := range fields {
		start := 0
		for i := 0; i < len(f); i++ {
			if f[i] < '0' || f[i] > '9' {
				out = append(out, f[start:i+1])
				start = i + 1
			}
		}
		if start < len(f) {
			out = append(out, f[start:])
		}
	}
	return out
}

func TilesName(tiles []Tile) string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}

// Vocabulary 34 种牌的只读表，构造一次后按指针传递
type Vocabulary struct {
	tiles [NumTileTypes]Tile
}

func NewVocabulary() *Vocabulary {
	v := &Vocabulary{}
	for i := 0; i < NumTileTypes; i++ {
		v.tiles[i] = TileType(i).Tile()
	}
	return v
}

func (v *Vocabulary) Len() int {
	return NumTileTypes
}

func (v *Vocabulary) At(i int) Tile {
	return v.tiles[i]
}

// Tiles 返回副本，调用方修改不会影响词表
func (v *Vocabulary) Tiles() []Tile {
	out := make([]Tile, NumTileTypes)
	copy(out, v.tiles[:])
	return out
}
