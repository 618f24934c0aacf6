package tilekit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tmxDoc wraps layer xml in a 2x2 map with one external tileset
func tmxDoc(layers string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.2" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="16" tileheight="16">
 <editorsettings><export format="json"/></editorsettings>
 <properties>
  <property name="name" value="test"/>
  <property name="depth" type="int" value="3"/>
 </properties>
 <tileset firstgid="1" source="../tilesets/grass.tsx"/>
%s
</map>`, layers)
}

func TestDecodeTMXData(t *testing.T) {
	expect := []int{1, 2, 0, 3}
	cases := map[string]string{
		"csv":    `<data encoding="csv">1,2147483650,` + "\n" + `0,3758096387</data>`,
		"base64": `<data encoding="base64">AQAAAAIAAIAAAAAAAwAAYA==</data>`,
		"zlib":   `<data encoding="base64" compression="zlib">eJxjZGBgYGJgaABSDMwMDAkABSQA5w==</data>`,
		"gzip":   `<data encoding="base64" compression="gzip">H4sIAAAAAAACA2NkYGBgYmBoAFIMzAwMCQCiirqXEAAAAA==</data>`,
	}

	for name, data := range cases {
		doc := tmxDoc(`<layer id="1" name="ground" width="2" height="2">` + data + `</layer>`)

		cfg, err := DecodeTMX(strings.NewReader(doc))
		require.Nil(t, err, name)

		assert.Equal(t, "test", cfg.Name)
		assert.Equal(t, 2, cfg.Width)
		assert.Equal(t, 16, cfg.TileHeight)
		assert.Equal(t, []TilesetRef{{FirstGID: 1, Source: "../tilesets/grass.tsx"}}, cfg.Tilesets)
		require.Len(t, cfg.Layers, 1, name)
		assert.Equal(t, LayerTile, cfg.Layers[0].Type)
		assert.Equal(t, "ground", cfg.Layers[0].Name)
		assert.Equal(t, expect, cfg.Layers[0].Data, name)
	}
}

func TestDecodeTMXLayerOrder(t *testing.T) {
	doc := tmxDoc(`
 <layer name="below" width="2" height="2"><data encoding="csv">1,1,1,1</data></layer>
 <group name="decor">
  <layer name="flowers" width="2" height="2"><data encoding="csv">0,2,0,0</data></layer>
 </group>
 <objectgroup name="spawns"/>
 <layer name="above" width="2" height="2"><data encoding="csv">0,0,0,3</data></layer>`)

	cfg, err := DecodeTMX(strings.NewReader(doc))
	require.Nil(t, err)

	names := []string{}
	types := []string{}
	for _, l := range cfg.Layers {
		names = append(names, l.Name)
		types = append(types, l.Type)
	}
	assert.Equal(t, []string{"below", "decor", "spawns", "above"}, names)
	assert.Equal(t, []string{LayerTile, LayerGroup, "objectgroup", LayerTile}, types)

	require.Len(t, cfg.Layers[1].Layers, 1)
	assert.Equal(t, []int{0, 2, 0, 0}, cfg.Layers[1].Layers[0].Data)
}

func TestDecodeTMXErrors(t *testing.T) {
	cases := map[string]string{
		"not xml": `{"width": 2}`,
		"isometric": `<map orientation="isometric" width="2" height="2" tilewidth="16" tileheight="16">
 <layer name="a"><data encoding="csv">1,1,1,1</data></layer></map>`,
		"embedded tileset": `<map orientation="orthogonal" width="2" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="inline" tilewidth="16" tileheight="16"><image source="a.png"/></tileset></map>`,
		"no data":         tmxDoc(`<layer name="a" width="2" height="2"/>`),
		"bad encoding":    tmxDoc(`<layer name="a"><data>AAAA</data></layer>`),
		"bad base64":      tmxDoc(`<layer name="a"><data encoding="base64">!!!</data></layer>`),
		"bad compression": tmxDoc(`<layer name="a"><data encoding="base64" compression="zstd">AQAAAA==</data></layer>`),
		"short base64":    tmxDoc(`<layer name="a"><data encoding="base64">AQAA</data></layer>`),
		"bad csv":         tmxDoc(`<layer name="a"><data encoding="csv">1,,2</data></layer>`),
		"zero sized map":  `<map orientation="orthogonal" width="0" height="0" tilewidth="16" tileheight="16"></map>`,
	}

	for name, doc := range cases {
		_, err := DecodeTMX(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrDecode, name)
	}
}

func TestDecodeTSX(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.2" name="grass" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="grass.png" width="32" height="32"/>
 <tile id="1">
  <properties>
   <property name="block" type="bool" value="true"/>
  </properties>
 </tile>
 <tile id="2">
  <properties>
   <property name="name" value="player_start"/>
   <property name="visible" type="bool" value="false"/>
   <property name="weight" type="int" value="12"/>
  </properties>
 </tile>
 <tile id="3"/>
</tileset>`

	cfg, err := DecodeTSX(strings.NewReader(doc))
	require.Nil(t, err)

	assert.Equal(t, "grass", cfg.Name)
	assert.Equal(t, "grass.png", cfg.Image)
	assert.Equal(t, 16, cfg.TileWidth)
	assert.Equal(t, map[string]map[string]interface{}{
		"1": {KeyBlock: true},
		"2": {KeyName: PlayerStart, KeyVisible: false, "weight": 12},
	}, cfg.TileProperties)

	ts, err := NewTileset(cfg, indexedSheet(2, 2, 16, 16), "tilesets/grass.tsx")
	require.Nil(t, err)
	assert.True(t, ts.Tiles[1].Block)
	assert.Equal(t, PlayerStart, ts.Tiles[2].Name)
	assert.False(t, ts.Tiles[2].Visible)
	assert.True(t, ts.Tiles[3].Visible)
}

func TestDecodeTSXErrors(t *testing.T) {
	cases := map[string]string{
		"not xml":  `nope`,
		"no image": `<tileset name="a" tilewidth="16" tileheight="16"></tileset>`,
		"no size":  `<tileset name="a"><image source="a.png"/></tileset>`,
	}

	for name, doc := range cases {
		_, err := DecodeTSX(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrDecode, name)
	}
}
