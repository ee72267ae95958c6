// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// Service is a `service Name { ... }` definition.
type Service struct {
	Name    string
	Entries []ServiceEntry
}

// ServiceEntry is one of *[Comment], *[Option], or *[RPC].
type ServiceEntry interface {
	Node
	isServiceEntry()
}

// StreamMode says which sides of an RPC are streamed.
type StreamMode int

const (
	Unary StreamMode = iota
	ClientStreaming
	ServerStreaming
	BidiStreaming
)

// StreamModeOf combines the two `stream` markers of an RPC signature.
func StreamModeOf(requestStreamed, responseStreamed bool) StreamMode {
	switch {
	case requestStreamed && responseStreamed:
		return BidiStreaming
	case requestStreamed:
		return ClientStreaming
	case responseStreamed:
		return ServerStreaming
	default:
		return Unary
	}
}

// String implements [fmt.Stringer].
func (m StreamMode) String() string {
	switch m {
	case ClientStreaming:
		return "client-streaming"
	case ServerStreaming:
		return "server-streaming"
	case BidiStreaming:
		return "bidi-streaming"
	default:
		return "unary"
	}
}

// RPC is an `rpc Name(Request) returns (Response)` declaration.
//
// Entries holds the contents of the optional `{ ... }` body.
type RPC struct {
	Name     string
	Request  string
	Response string
	Stream   StreamMode
	Entries  []RPCEntry
}

// RPCEntry is one of *[Comment] or *[Option].
type RPCEntry interface {
	Node
	isRPCEntry()
}

func (*Service) astNode() {}
func (*RPC) astNode()     {}

func (*Comment) isServiceEntry() {}
func (*Option) isServiceEntry()  {}
func (*RPC) isServiceEntry()     {}

func (*Comment) isRPCEntry() {}
func (*Option) isRPCEntry()  {}
