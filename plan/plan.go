// Package plan compiles PHP date() format specifiers into reusable
// evaluation plans: an ordered list of literal and field actions resolved
// once per specifier, then executed against decomposed instants.
package plan

import (
	"unicode/utf8"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/zone"
)

// Specifiers the c and r fields expand to.
const (
	ISO8601 = `Y-m-d\TH:i:sP`
	RFC2822 = `D, d M Y H:i:s O`
)

// State is one evaluation of a plan: the decomposed instant plus lazily
// resolved zone information, shared by every field of the plan (and of the
// c/r sub-plans).
type State struct {
	Cal calendar.Fields

	zones     *zone.Resolver
	cacheZone bool
	info      *zone.Info
}

// NewState prepares an evaluation of f. zones is consulted only for the
// Local view and only if a zone field is present; cacheZone controls
// whether a miss is stored in its bucket table.
func NewState(f calendar.Fields, zones *zone.Resolver, cacheZone bool) *State {
	return &State{Cal: f, zones: zones, cacheZone: cacheZone}
}

// Zone returns the zone record for the instant, resolving it on first use.
func (s *State) Zone() *zone.Info {
	if s.info == nil {
		if s.Cal.View() == calendar.UTC || s.zones == nil {
			s.info = zone.UTCInfo()
		} else {
			s.info = s.zones.Resolve(&s.Cal, s.cacheZone)
		}
	}
	return s.info
}

type appender func(b []byte, s *State) []byte

// action emits either lit (fn == nil) or the output of fn.
type action struct {
	lit string
	fn  appender
}

// Plan is an immutable compiled specifier.
type Plan struct {
	spec    string
	actions []action
}

// Spec returns the specifier the plan was compiled from.
func (p *Plan) Spec() string { return p.spec }

// Len returns the number of actions.
func (p *Plan) Len() int { return len(p.actions) }

// Append executes the plan against s, appending the output to b.
func (p *Plan) Append(b []byte, s *State) []byte {
	for i := range p.actions {
		a := &p.actions[i]
		if a.fn == nil {
			b = append(b, a.lit...)
			continue
		}
		b = a.fn(b, s)
	}
	return b
}

// Format executes the plan and returns the output as a string.
func (p *Plan) Format(s *State) string {
	var buf [64]byte
	return string(p.Append(buf[:0], s))
}

// compile scans spec left to right. Field letters become field actions;
// everything else, including the character after a backslash, is folded
// into literal runs. sub resolves the c and r expansions.
func compile(spec string, sub func(string) *Plan) *Plan {
	p := &Plan{spec: spec}
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			p.actions = append(p.actions, action{lit: string(lit)})
			lit = lit[:0]
		}
	}
	emit := func(fn appender) {
		flush()
		p.actions = append(p.actions, action{fn: fn})
	}

	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch {
		case c == 'c':
			emit(subPlan(sub(ISO8601)))
		case c == 'r':
			emit(subPlan(sub(RFC2822)))
		case c < utf8.RuneSelf && fields[c] != nil:
			emit(fields[c])
		case c == '\\' && i+1 < len(spec):
			_, n := utf8.DecodeRuneInString(spec[i+1:])
			lit = append(lit, spec[i+1:i+1+n]...)
			i += n
		default:
			lit = append(lit, c)
		}
	}
	flush()
	return p
}

func subPlan(p *Plan) appender {
	return func(b []byte, s *State) []byte { return p.Append(b, s) }
}
