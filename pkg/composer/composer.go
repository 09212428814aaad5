// Package composer builds the outbound performatives of the bridge.
//
// Every builder is pure: it returns a new kqml.Performative and performs no
// I/O. Only the session writes to the transport.
package composer

import (
	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/kqml"
)

// DefaultName is the module name registered with the message bus.
const DefaultName = "bsb"

// SpokenAck builds (tell :content (spoken :what "text")).
func SpokenAck(text string) kqml.Performative {
	content := kqml.NewList(kqml.Symbol(domain.HeadSpoken)).
		With("what", kqml.String(text))
	return kqml.NewPerformative("tell").With("content", content)
}

// DisplayRequest builds (request :content (display-sbgn :graph "doc")).
func DisplayRequest(doc diagram.Document) kqml.Performative {
	content := kqml.NewList(kqml.Symbol(domain.HeadDisplaySBGN)).
		With("graph", kqml.String(string(doc)))
	return kqml.NewPerformative("request").With("content", content)
}

// Register builds (register :name <name>).
func Register(name string) kqml.Performative {
	if name == "" {
		name = DefaultName
	}
	return kqml.NewPerformative("register").With("name", kqml.Symbol(name))
}

// Subscribe builds (subscribe :content (tell &key :content (<head> . *))).
func Subscribe(head string) kqml.Performative {
	pattern := kqml.NewList(kqml.Symbol(head), kqml.Symbol("."), kqml.Symbol("*"))
	tellPattern := kqml.NewList(kqml.Symbol("tell"), kqml.Symbol("&key"), kqml.Symbol(":content"), pattern)
	return kqml.NewPerformative("subscribe").With("content", tellPattern)
}

// Ready builds (tell :content (module-status ready)).
func Ready() kqml.Performative {
	content := kqml.NewList(kqml.Symbol(domain.HeadModuleStatus), kqml.Symbol("ready"))
	return kqml.NewPerformative("tell").With("content", content)
}

// StartConversation builds (tell :content (start-conversation)).
func StartConversation() kqml.Performative {
	return kqml.NewPerformative("tell").With("content", kqml.NewList(kqml.Symbol(domain.HeadStartConversation)))
}

// Handshake returns the startup sequence in send order: register, the
// three subscriptions (spoken, display-model, display-image), ready.
func Handshake(name string) []kqml.Performative {
	return []kqml.Performative{
		Register(name),
		Subscribe(domain.HeadSpoken),
		Subscribe(domain.HeadDisplayModel),
		Subscribe(domain.HeadDisplayImage),
		Ready(),
	}
}
