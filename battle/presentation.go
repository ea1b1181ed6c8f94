package battle

import "github.com/plus3/skirmish/ecs"

// RenderSystem plots every visible unit on the sink. Sinks with a Clear
// method are cleared first.
type RenderSystem struct {
	Visible ecs.Query[struct {
		*Position
		*Sprite
		*Unit
		*Data
	}]

	sink Plotter
}

func NewRenderSystem(sink Plotter) *RenderSystem {
	return &RenderSystem{sink: sink}
}

func (s *RenderSystem) Execute(frame *ecs.Frame) error {
	if s.sink == nil {
		return nil
	}
	if c, ok := s.sink.(interface{ Clear() }); ok {
		c.Clear()
	}

	for item := range s.Visible.Values() {
		s.sink.Plot(int(item.Position.X), int(item.Position.Y), item.Sprite.Glyph)
	}
	return nil
}

// SpriteSystem derives glyphs from tags.
type SpriteSystem struct {
	Spawning ecs.Query[struct {
		*Sprite
		*Spawn
	}]
	Graves ecs.Query[struct {
		*Sprite
		*Dead
	}]
	NPCs     unitSprites[NPC]
	Heroes   unitSprites[Hero]
	Monsters unitSprites[Monster]
}

type unitSprites[K any] = ecs.Query[struct {
	*Sprite
	Kind  *K
	Dead  *Dead  `ecs:"exclude"`
	Spawn *Spawn `ecs:"exclude"`
}]

func NewSpriteSystem() *SpriteSystem {
	return &SpriteSystem{}
}

func (s *SpriteSystem) Execute(frame *ecs.Frame) error {
	for item := range s.Spawning.Values() {
		item.Sprite.Glyph = GlyphSpawn
	}
	for item := range s.Graves.Values() {
		item.Sprite.Glyph = GlyphGrave
	}
	for item := range s.NPCs.Values() {
		item.Sprite.Glyph = GlyphNPC
	}
	for item := range s.Heroes.Values() {
		item.Sprite.Glyph = GlyphHero
	}
	for item := range s.Monsters.Values() {
		item.Sprite.Glyph = GlyphMonster
	}
	return nil
}
