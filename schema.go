package tilekit

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// schemaKinds are the asset files we can describe with a JSON schema
var schemaKinds = map[string]struct {
	v    interface{}
	desc string
}{
	"map":     {new(MapConfig), "A map: grid size, tileset references & layers of cell values"},
	"tileset": {new(TilesetConfig), "A tileset: one image cut into equal tiles & per tile properties"},
	"entity":  {new(EntityConfig), "An entity: frame sheet, animation timing, speed & collision box"},
}

// SchemaKinds lists the kinds accepted by Schema
func SchemaKinds() []string {
	return []string{"map", "tileset", "entity"}
}

// Schema returns the JSON schema for one kind of asset file, so editors
// can validate hand written files.
func Schema(kind string) (*jsonschema.Schema, error) {
	k, ok := schemaKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no schema for %q (want one of %v)", ErrLookup, kind, SchemaKinds())
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(k.v)
	schema.Title = fmt.Sprintf("tilekit %s", kind)
	schema.Description = k.desc
	return schema, nil
}
