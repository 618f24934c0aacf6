package tilekit

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntityConfig() *EntityConfig {
	return &EntityConfig{
		Name:           "hero",
		Image:          "hero.png",
		FrameSize:      [2]int{10, 10},
		AnimationSpeed: 8,
		Speed:          2,
		CollisionBox:   [4]int{2, 5, 6, 5},
	}
}

func TestNewEntity(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)

	assert.Equal(t, "hero", e.Name)
	assert.Equal(t, 20, e.Frames())
	assert.Equal(t, image.Rect(0, 0, 10, 10), e.Bounds())
	assert.Equal(t, image.Rect(2, 5, 8, 10), e.CollisionBox())
	assert.Equal(t, Down, e.Facing())
	assert.False(t, e.Moving())
	assert.Equal(t, 0, frameIndex(e.Image()))

	for _, name := range []string{WalkDown, WalkLeft, WalkUp, WalkRight} {
		c, err := e.Animation(name)
		require.Nil(t, err)
		assert.Equal(t, 4, c.Len())
		assert.Equal(t, 8, c.Duration())
	}
}

func TestEntityIdleFrames(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)

	cases := []struct {
		Intent Vec
		Facing Facing
		Frame  int
	}{
		{Vec{Y: 1}, Down, 0},
		{Vec{X: -1}, Left, 1},
		{Vec{Y: -1}, Up, 2},
		{Vec{X: 1}, Right, 3},
	}

	for _, c := range cases {
		e.ApplyMovement(c.Intent, nil)
		e.ApplyMovement(Vec{}, nil)
		e.Update()

		assert.Equal(t, c.Facing, e.Facing())
		assert.Equal(t, c.Frame, frameIndex(e.Image()), c.Facing.String())
	}
}

func TestEntityWalkAnimation(t *testing.T) {
	cases := []struct {
		Intent Vec
		Frames []int
	}{
		{Vec{Y: 1}, []int{4, 4, 5, 5, 6, 6, 7, 7, 4}},
		{Vec{X: -1}, []int{8, 8, 9, 9, 10, 10, 11, 11, 8}},
		{Vec{Y: -1}, []int{12, 12, 13, 13, 14, 14, 15, 15, 12}},
		{Vec{X: 1}, []int{16, 16, 17, 17, 18, 18, 19, 19, 16}},
	}

	for _, c := range cases {
		e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
		require.Nil(t, err)

		result := []int{}
		for range c.Frames {
			e.ApplyMovement(c.Intent, nil)
			require.True(t, e.Moving())
			e.Update()
			assert.False(t, e.Moving())
			result = append(result, frameIndex(e.Image()))
		}

		assert.Equal(t, c.Frames, result, "%v", c.Intent)
	}
}

func TestEntityCustomAnimations(t *testing.T) {
	cfg := testEntityConfig()
	cfg.Animations = map[string][2]int{
		WalkDown:  {4, 5},
		WalkLeft:  {6, 7},
		WalkUp:    {8, 9},
		WalkRight: {10, 11},
		"wave":    {12, 19},
	}

	e, err := NewEntity(cfg, indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)

	c, err := e.Animation("wave")
	require.Nil(t, err)
	assert.Equal(t, 8, c.Len())

	c, err = e.Animation(WalkLeft)
	require.Nil(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 6, frameIndex(c.Current()))

	_, err = e.Animation("dance")
	assert.ErrorIs(t, err, ErrLookup)
}

func TestNewEntityErrors(t *testing.T) {
	// a custom map without every walk animation
	missing := testEntityConfig()
	missing.Animations = map[string][2]int{WalkDown: {4, 7}}

	// default animations reach frame 19
	short := testEntityConfig()

	cases := []struct {
		Name   string
		Config *EntityConfig
		Sheet  image.Image
		Err    error
	}{
		{"missing walk animation", missing, indexedSheet(4, 5, 10, 10), ErrLookup},
		{"too few idle frames", testEntityConfig(), indexedSheet(3, 1, 10, 10), ErrIndex},
		{"sheet too short for walks", short, indexedSheet(4, 2, 10, 10), ErrIndex},
		{"no frame size", &EntityConfig{Name: "x", Image: "x.png"}, indexedSheet(4, 5, 10, 10), ErrDecode},
	}

	for _, c := range cases {
		_, err := NewEntity(c.Config, c.Sheet)
		assert.ErrorIs(t, err, c.Err, c.Name)
	}
}

func TestNewEntityReportsFirstBadAnimation(t *testing.T) {
	cfg := testEntityConfig()
	cfg.Animations = map[string][2]int{
		WalkDown:  {4, 7},
		WalkLeft:  {8, 11},
		WalkUp:    {12, 15},
		WalkRight: {16, 19},
		"zzz":     {30, 31},
		"bow":     {40, 41},
		"kneel":   {50, 51},
	}

	for i := 0; i < 20; i++ {
		_, err := NewEntity(cfg, indexedSheet(4, 5, 10, 10))
		require.ErrorIs(t, err, ErrIndex)
		assert.Contains(t, err.Error(), "animation bow:")
	}

	// every walk animation is missing; down is checked first
	cfg.Animations = map[string][2]int{"wave": {4, 7}}
	for i := 0; i < 20; i++ {
		_, err := NewEntity(cfg, indexedSheet(4, 5, 10, 10))
		require.ErrorIs(t, err, ErrLookup)
		assert.Contains(t, err.Error(), WalkDown)
	}
}

func TestEntityAnchors(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)
	e.SetPosition(image.Pt(100, 200))

	cases := map[string]image.Point{
		"topleft":     {100, 200},
		"midtop":      {105, 200},
		"topright":    {110, 200},
		"midleft":     {100, 205},
		"center":      {105, 205},
		"midright":    {110, 205},
		"bottomleft":  {100, 210},
		"midbottom":   {105, 210},
		"bottomright": {110, 210},
	}

	for name, expect := range cases {
		p, err := e.Anchor(name)
		require.Nil(t, err)
		assert.Equal(t, expect, p, name)
	}

	_, err = e.Anchor("somewhere")
	assert.ErrorIs(t, err, ErrLookup)
}

func TestEntitySpawnAt(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)

	e.SpawnAt(nil)
	assert.Equal(t, image.Pt(0, 0), e.Position())

	start := image.Rect(32, 48, 48, 64)
	e.SpawnAt(&start)

	assert.Equal(t, image.Pt(32, 48), e.Position())
	assert.Equal(t, image.Rect(34, 53, 40, 58), e.CollisionBox())
	assert.Equal(t, image.Rect(2, 5, 8, 10), e.BoxOffset())
}

func TestEntitySpeed(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)

	e.SetSpeed(7)
	e.ApplyMovement(Vec{X: 1}, nil)
	assert.Equal(t, image.Pt(7, 0), e.Position())

	e.SetSpeed(-3)
	assert.Equal(t, 0, e.Speed())
	e.ApplyMovement(Vec{X: 1}, nil)
	assert.Equal(t, image.Pt(7, 0), e.Position())
	assert.True(t, e.Moving())
}

func TestEntityRemembersBlocks(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)
	assert.Len(t, e.Blocks(), 0)

	blocks := []image.Rectangle{image.Rect(50, 50, 60, 60)}
	e.ApplyMovement(Vec{}, blocks)

	assert.Equal(t, blocks, e.Blocks())
}
