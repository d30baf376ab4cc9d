package env

import (
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/deno"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/golang"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/javascript"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/rust"
)

type codecs struct{}

func (codecs) Node() deps.Codec   { return javascript.NewCodec(deps.RuntimeNode) }
func (codecs) Bun() deps.Codec    { return javascript.NewCodec(deps.RuntimeBun) }
func (codecs) Deno() deps.Codec   { return deno.Codec{} }
func (codecs) Rust() deps.Codec   { return rust.Codec{} }
func (codecs) Golang() deps.Codec { return golang.Codec{} }

// CodecFor returns the manifest codec of rt.
func CodecFor(rt deps.Runtime) (deps.Codec, error) {
	return deps.VisitRuntime[deps.Codec](rt, codecs{})
}
