package codec

import (
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/token"
)

// podFrame is the state of one open pod object
type podFrame struct {
	id       media.PodID
	pos      int
	seen     fieldSet
	fallback bool
}

// readPods reads the pods array into the arena. Every element is the outermost
// object of one chain.
func (d *Decoder) readPods(a *media.PodArena) error {
	switch d.r.NextToken() {
	case token.Null:
		return nil
	case token.StartArray:
	default:
		return d.unexpected(token.StartArray)
	}
	for {
		switch d.r.NextToken() {
		case token.EndArray:
			return nil
		case token.StartObject:
		default:
			return d.unexpected(token.StartObject)
		}
		head, err := d.readPodChain(a)
		if err != nil {
			return err
		}
		a.AddHead(head)
	}
}

// readPodChain reads a chain of nested pod objects whose outermost START_OBJECT is
// the current token. Nesting is tracked on an explicit stack, so the depth of a chain
// is limited by the configured maximum only.
func (d *Decoder) readPodChain(a *media.PodArena) (media.PodID, error) {
	info := &entities[EntityPod]
	head := a.New("")
	stack := append(d.pods[:0], podFrame{id: head})
	defer func() { d.pods = stack[:0] }()

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		kind := d.r.NextToken()
		if kind == token.EndObject {
			if top.fallback {
				d.fallback++
			} else {
				d.fast++
			}
			if err := d.checkRequired(info, EntityPod, top.seen); err != nil {
				return media.NoPod, err
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if kind != token.FieldName {
			return media.NoPod, d.unexpected(token.EndObject)
		}

		// same two stage matching as readObject: positional while possible, registry afterwards
		var f FieldID
		i := -1
		if !top.fallback {
			i = info.match(top.pos, d.r.CurrentName())
		}
		if i >= 0 {
			f = info.order[i]
			top.pos = i + 1
		} else {
			top.fallback = true
			var err error
			if f, err = d.resolve(EntityPod, top.seen); err != nil {
				return media.NoPod, err
			}
		}
		top.seen |= 1 << f

		switch f {
		case FieldMessage:
			msg, err := d.readString()
			if err != nil {
				return media.NoPod, err
			}
			a.SetMessage(top.id, msg)
		case FieldPod:
			switch d.r.NextToken() {
			case token.Null:
				// end of chain
			case token.StartObject:
				if len(stack) >= d.opts.maxPodDepth {
					return media.NoPod, &RecursionDepthError{Limit: d.opts.maxPodDepth, Location: d.r.Location()}
				}
				child := a.New("")
				a.Link(top.id, child)
				stack = append(stack, podFrame{id: child})
			default:
				return media.NoPod, d.unexpected(token.StartObject)
			}
		}
	}
	return head, nil
}
