package level

import "fmt"

type (
	SectorType      int
	LiftState       int
	SpriteAlignment int
	SpriteTag       int
	// LoTag is the Build-style behaviour tag shared by sectors and sprites.
	LoTag int
)

const (
	SectorIndependent SectorType = iota
	SectorFloorPit
	SectorFloorRaise
	SectorCeilingLower
	SectorCeilingRaise
)

const (
	LiftAtBottom LiftState = iota
	LiftRising
	LiftAtTop
	LiftLowering
)

const (
	AlignFloor SpriteAlignment = iota
	AlignWall
	AlignFace
)

const (
	SpriteDecoration SpriteTag = iota
	SpriteSwitch
)

const (
	LoTagDecoration LoTag = iota
	LoTagPickup
	LoTagObstacle
	LoTagSwitch
	LoTagLift
	LoTagDoor
)

var (
	sectorTypeNames = []string{"independent", "floor_pit", "floor_raise", "ceiling_lower", "ceiling_raise"}
	liftStateNames  = []string{"at_bottom", "rising", "at_top", "lowering"}
	alignmentNames  = []string{"floor", "wall", "face"}
	spriteTagNames  = []string{"decoration", "switch"}
	loTagNames      = []string{"decoration", "pickup", "obstacle", "switch", "lift", "door"}
)

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(kind string, names []string, text []byte) (int, error) {
	for i, name := range names {
		if name == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, text)
}

func (t SectorType) String() string { return enumName(sectorTypeNames, int(t)) }

func (t SectorType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *SectorType) UnmarshalText(text []byte) error {
	v, err := parseEnum("sector type", sectorTypeNames, text)
	*t = SectorType(v)
	return err
}

func (s LiftState) String() string { return enumName(liftStateNames, int(s)) }

func (s LiftState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *LiftState) UnmarshalText(text []byte) error {
	v, err := parseEnum("lift state", liftStateNames, text)
	*s = LiftState(v)
	return err
}

func (a SpriteAlignment) String() string { return enumName(alignmentNames, int(a)) }

func (a SpriteAlignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *SpriteAlignment) UnmarshalText(text []byte) error {
	v, err := parseEnum("sprite alignment", alignmentNames, text)
	*a = SpriteAlignment(v)
	return err
}

func (t SpriteTag) String() string { return enumName(spriteTagNames, int(t)) }

func (t SpriteTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *SpriteTag) UnmarshalText(text []byte) error {
	v, err := parseEnum("sprite tag", spriteTagNames, text)
	*t = SpriteTag(v)
	return err
}

func (t LoTag) String() string { return enumName(loTagNames, int(t)) }

func (t LoTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *LoTag) UnmarshalText(text []byte) error {
	v, err := parseEnum("lo tag", loTagNames, text)
	*t = LoTag(v)
	return err
}
