// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

// Message is an ordered collection of fields with unique keys.
// The order of first occurrence is kept and determines the output order.
type Message struct {
	Fields []*Field
	// index maps keys to positions in Fields. It is rebuilt whenever it does not match Fields.
	index map[string]int `diff:"-"`
}

// NewMessage creates an empty message.
func NewMessage() *Message {
	return &Message{}
}

func (m *Message) Kind() Kind {
	return KindMessage
}

func (m *Message) value() {}

// Add merges a value into the message and can be used builder-style:
//   - an absent key is inserted behind all existing fields,
//   - a key holding a *Repeated gets the value appended,
//   - a key holding a single value is turned into a *Repeated of the old and the new value.
//
// Adding a *Repeated appends each of its values, so a *Repeated never contains another one.
func (m *Message) Add(key string, v Value) *Message {
	i, ok := m.lookup(key)
	if !ok {
		if r, isRepeated := v.(*Repeated); isRepeated {
			v = NewRepeated(r.Values...)
		}

		m.index[key] = len(m.Fields)
		m.Fields = append(m.Fields, &Field{Key: key, Value: v})

		return m
	}

	field := m.Fields[i]
	if r, isRepeated := field.Value.(*Repeated); isRepeated {
		r.Append(v)
	} else {
		field.Value = NewRepeated(field.Value, v)
	}

	return m
}

// Get returns the value of the given key.
// Get never modifies m, so any number of goroutines may read a message which is no longer changed.
func (m *Message) Get(key string) (Value, bool) {
	if i, ok := m.index[key]; ok && i < len(m.Fields) && m.Fields[i].Key == key {
		return m.Fields[i].Value, true
	}

	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Len returns the number of unique keys.
func (m *Message) Len() int {
	return len(m.Fields)
}

// Keys returns all keys in field order.
func (m *Message) Keys() []string {
	keys := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		keys = append(keys, f.Key)
	}

	return keys
}

// lookup finds the position of key for Add and keeps the index in sync with Fields,
// which may have been modified directly.
func (m *Message) lookup(key string) (int, bool) {
	if m.index == nil || len(m.index) != len(m.Fields) {
		m.reindex()
	}

	i, ok := m.index[key]
	if ok && m.Fields[i].Key != key {
		m.reindex()
		i, ok = m.index[key]
	}

	return i, ok
}

func (m *Message) reindex() {
	m.index = make(map[string]int, len(m.Fields))
	for i, f := range m.Fields {
		if _, exists := m.index[f.Key]; !exists {
			m.index[f.Key] = i
		}
	}
}
