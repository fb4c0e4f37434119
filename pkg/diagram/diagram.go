package diagram

import "context"

// Metadata carries document-level metadata a caller wants applied to the
// parsed model. Render threads the front matter title through here; callers
// of FromText supply their own.
type Metadata struct {
	Title string
}

// Diagram binds preprocessed text to a resolved diagram definition. The
// bound model is the definition's shared DB instance: it holds this
// diagram's parse until any facade of the same type parses again.
type Diagram struct {
	typ  string
	text string
	def  *Definition
}

// FromText resolves text to a diagram implementation and parses it. The text
// must already be preprocessed; front matter or directives left in it are
// ignored by detection but will reach the grammar parser verbatim.
//
// The sequence is fixed: detect the type against the current config, resolve
// the definition (loading it if needed), encode entity references, bind and
// clear the shared model, run the definition's init with the effective
// config, apply metadata, then parse.
func FromText(ctx context.Context, text string, meta Metadata) (*Diagram, error) {
	cfg := CurrentConfig()

	typ, err := DetectType(text, cfg)
	if err != nil {
		return nil, err
	}

	def, err := Resolve(ctx, typ)
	if err != nil {
		return nil, err
	}

	text = encodeEntities(text) + "\n"

	if binder, ok := def.Parser.(DBBinder); ok {
		binder.BindDB(def.DB)
	}
	if c, ok := def.DB.(Clearer); ok {
		c.Clear()
	}
	if def.Init != nil {
		def.Init(cfg)
	}
	if meta.Title != "" {
		if ts, ok := def.DB.(TitleSettable); ok {
			ts.SetDiagramTitle(meta.Title)
		}
	}

	if err := def.Parser.Parse(ctx, text); err != nil {
		return nil, err
	}

	return &Diagram{typ: typ, text: text, def: def}, nil
}

// Render draws the diagram as an SVG document. id becomes the root element
// id; version is stamped into the output metadata. Entity sentinels encoded
// during FromText are restored in the result.
func (d *Diagram) Render(ctx context.Context, id, version string) ([]byte, error) {
	svg, err := d.def.Renderer.Draw(ctx, d.text, id, version, d)
	if err != nil {
		return nil, err
	}
	return decodeEntities(svg), nil
}

// Type returns the detected diagram type tag.
func (d *Diagram) Type() string {
	return d.typ
}

// Text returns the entity-encoded text the parser consumed.
func (d *Diagram) Text() string {
	return d.text
}

// DB returns the bound model instance, shared with every facade of this
// type.
func (d *Diagram) DB() DB {
	return d.def.DB
}

// Parser returns the definition's parser.
func (d *Diagram) Parser() Parser {
	return d.def.Parser
}
