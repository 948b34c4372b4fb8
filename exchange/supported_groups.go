// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package exchange

import (
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/tlserrors"
	"golang.org/x/crypto/cryptobyte"
)

// GroupSet has one bit per group ID the peer announced in supported_groups [rfc8446:4.2.7].
// IDs outside registry capacity are skipped, same as unknown IDs.
type GroupSet uint32

var _ [32 - constants.ExchangeRegistryCapacity]struct{}

func (s GroupSet) Contains(id GroupID) bool {
	return id < constants.ExchangeRegistryCapacity && s&(1<<id) != 0
}

func (s *GroupSet) Add(id GroupID) {
	if id < constants.ExchangeRegistryCapacity {
		*s |= 1 << id
	}
}

// ParseSupportedGroups parses NamedGroupList body, including 2-byte length prefix.
func ParseSupportedGroups(body []byte) (set GroupSet, err error) {
	input := cryptobyte.String(body)
	var list cryptobyte.String
	if !input.ReadUint16LengthPrefixed(&list) || !input.Empty() || len(list)%2 != 0 {
		return 0, tlserrors.ErrSupportedGroupsFormat
	}
	for !list.Empty() {
		var id uint16
		list.ReadUint16(&id)
		set.Add(GroupID(id))
	}
	return set, nil
}

// AppendSupportedGroups appends NamedGroupList with all groups of reg except sentinel,
// in ascending ID order.
func AppendSupportedGroups(b []byte, reg *Registry) []byte {
	builder := cryptobyte.NewBuilder(b)
	builder.AddUint16LengthPrefixed(func(list *cryptobyte.Builder) {
		reg.Enumerate(func(g *Group) {
			list.AddUint16(uint16(g.ID))
		})
	})
	return builder.BytesOrPanic()
}

// Select returns the first group from preference which is both registered and
// announced by peer, or sentinel if there is none.
func Select(reg *Registry, preference []GroupID, peer GroupSet) *Group {
	for _, id := range preference {
		if !peer.Contains(id) || !reg.Contains(int(id)) {
			continue
		}
		return reg.Lookup(int(id))
	}
	return reg.Sentinel()
}
