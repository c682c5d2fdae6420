package ast

// WalkBlocks calls fn for every block reachable from blocks, depth-first,
// including nested blocks inside Div/BlockQuote: it recurses into those
// children itself, so fn sees every nesting level without recursing on
// its own.
func WalkBlocks(blocks []Block, fn func(Block)) {
	for _, b := range blocks {
		fn(b)
		switch v := b.(type) {
		case *Div:
			WalkBlocks(v.Blocks, fn)
		case *BlockQuote:
			WalkBlocks(v.Blocks, fn)
		}
	}
}

// WalkInlines calls fn for every inline node reachable from blocks,
// depth-first, including a Figure's image and the inlines nested inside
// Emph/Strong/Link and Figure captions.
func WalkInlines(blocks []Block, fn func(Inline)) {
	WalkBlocks(blocks, func(b Block) {
		switch v := b.(type) {
		case *Paragraph:
			walkInlineSlice(v.Inlines, fn)
		case *Plain:
			walkInlineSlice(v.Inlines, fn)
		case *Header:
			walkInlineSlice(v.Inlines, fn)
		case *Figure:
			if v.Image != nil {
				fn(v.Image)
			}
			walkInlineSlice(v.Caption, fn)
		}
	})
}

func walkInlineSlice(inlines []Inline, fn func(Inline)) {
	for _, in := range inlines {
		fn(in)
		switch v := in.(type) {
		case *Emph:
			walkInlineSlice(v.Inlines, fn)
		case *Strong:
			walkInlineSlice(v.Inlines, fn)
		case *Link:
			walkInlineSlice(v.Inlines, fn)
		}
	}
}

// WalkLinks calls fn for every *Link node in the document, in source order.
// Most rewrite passes (has-annotation marker, archiver, local-link classifier,
// link-live/link-icon classifiers) only care about links, so this is the
// primary entry point they use.
func WalkLinks(blocks []Block, fn func(*Link)) {
	WalkInlines(blocks, func(in Inline) {
		if l, ok := in.(*Link); ok {
			fn(l)
		}
	})
}

// WalkHeaders calls fn for every *Header node in the document, in source order.
func WalkHeaders(blocks []Block, fn func(*Header)) {
	WalkBlocks(blocks, func(b Block) {
		if h, ok := b.(*Header); ok {
			fn(h)
		}
	})
}

// WalkImages calls fn for every *Image node in the document, in source order.
func WalkImages(blocks []Block, fn func(*Image)) {
	WalkInlines(blocks, func(in Inline) {
		if img, ok := in.(*Image); ok {
			fn(img)
		}
	})
}

// CollectText flattens a run of inlines to its plain-text rendering,
// dropping markup. Used by the header self-linker (§4.4.11) to build a
// title-case rendering, and by the footnote checker and interwiki resolver
// to read link text.
func CollectText(inlines []Inline) string {
	var out []byte
	var walk func([]Inline)
	walk = func(ins []Inline) {
		for _, in := range ins {
			switch v := in.(type) {
			case *Str:
				out = append(out, v.Text...)
			case *Space:
				out = append(out, ' ')
			case *SoftBreak:
				out = append(out, ' ')
			case *Emph:
				walk(v.Inlines)
			case *Strong:
				walk(v.Inlines)
			case *Link:
				walk(v.Inlines)
			case *Code:
				out = append(out, v.Text...)
			}
		}
	}
	walk(inlines)
	return string(out)
}
