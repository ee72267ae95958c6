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

package token

// Keywords, in the order they are listed in the language reference.
const (
	NotKeyword Word = iota

	Syntax
	Package
	Import
	Option
	Message
	Oneof
	Extend
	Enum
	Reserved
	Extensions
	Optional
	Required
	Repeated
	Map
	Service
	Rpc
	Returns
	Stream
	To
	Max
	True
	False

	wordCount
)

// Word identifies a reserved word of the language.
//
// Being a Word does not make a token unusable as a name: the grammar accepts
// every Word wherever a name is syntactically valid.
type Word byte

var words = [...]string{
	NotKeyword: "",
	Syntax:     "syntax",
	Package:    "package",
	Import:     "import",
	Option:     "option",
	Message:    "message",
	Oneof:      "oneof",
	Extend:     "extend",
	Enum:       "enum",
	Reserved:   "reserved",
	Extensions: "extensions",
	Optional:   "optional",
	Required:   "required",
	Repeated:   "repeated",
	Map:        "map",
	Service:    "service",
	Rpc:        "rpc",
	Returns:    "returns",
	Stream:     "stream",
	To:         "to",
	Max:        "max",
	True:       "true",
	False:      "false",
}

var byText = func() map[string]Word {
	m := make(map[string]Word, len(words))
	for w, s := range words {
		if s != "" {
			m[s] = Word(w)
		}
	}
	return m
}()

// Lookup returns the keyword spelled by text, or [NotKeyword].
func Lookup(text string) Word {
	return byText[text]
}

// Words returns every keyword, in declaration order.
func Words() []Word {
	all := make([]Word, 0, wordCount-1)
	for w := NotKeyword + 1; w < wordCount; w++ {
		all = append(all, w)
	}
	return all
}

// String returns the spelling of this keyword.
func (w Word) String() string {
	if int(w) < len(words) {
		return words[w]
	}
	return ""
}

// IsModifier returns whether this keyword is a field cardinality modifier.
func (w Word) IsModifier() bool {
	return w == Optional || w == Required || w == Repeated
}
