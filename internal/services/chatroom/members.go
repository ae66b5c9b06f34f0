package chatroom

import (
	"context"
	"fmt"

	"chatvault/internal/domain"
	"chatvault/internal/keying"
)

// PutMember inserts or replaces member in the roster of the record at key
// and bumps the record timestamp. It returns false when no record exists.
//
// The member's own timestamp is kept as given.
func (s *Service) PutMember(ctx context.Context, key domain.StorageKey, member domain.ChatRoomMember) (bool, error) {
	wallet, err := keying.ParseAddress(string(member.Wallet))
	if err != nil {
		return false, fmt.Errorf("member wallet: %w", err)
	}
	member.Wallet = wallet

	k := keying.CanonicalKey(key)
	unlock := s.locks.lock(k)
	defer unlock()

	item, ok, err := s.records.Get(ctx, k)
	if err != nil {
		s.logFault("put member", k, err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	if item.Members == nil {
		item.Members = make(domain.ChatRoomMembers, 1)
	}
	item.Members[wallet] = member
	item.Timestamp = s.nowMillis()

	if err := s.records.Put(ctx, k, item); err != nil {
		s.logFault("put member", k, err)
		return false, err
	}
	s.log.Debug("member stored", "key", k, "wallet", wallet, "type", member.MemberType)
	return true, nil
}

// GetMembers returns a copy of the roster of the record at key.
func (s *Service) GetMembers(ctx context.Context, key domain.StorageKey) (domain.ChatRoomMembers, bool, error) {
	item, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	members := item.Members.Clone()
	if members == nil {
		members = domain.ChatRoomMembers{}
	}
	return members, true, nil
}

// GetMember returns the roster entry for wallet. found is false when either
// the record or the member is absent.
func (s *Service) GetMember(ctx context.Context, key domain.StorageKey, wallet string) (domain.ChatRoomMember, bool, error) {
	item, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return domain.ChatRoomMember{}, false, err
	}
	m, ok := item.Members[domain.NormalizeAddress(wallet)]
	return m, ok, nil
}

// DeleteMember removes wallet from the roster of the record at key. It
// returns true only if an entry was removed. Removing the owner is allowed.
func (s *Service) DeleteMember(ctx context.Context, key domain.StorageKey, wallet string) (bool, error) {
	w := domain.NormalizeAddress(wallet)

	k := keying.CanonicalKey(key)
	unlock := s.locks.lock(k)
	defer unlock()

	item, ok, err := s.records.Get(ctx, k)
	if err != nil {
		s.logFault("delete member", k, err)
		return false, err
	}
	if !ok {
		return false, nil
	}
	if _, present := item.Members[w]; !present {
		return false, nil
	}

	delete(item.Members, w)
	item.Timestamp = s.nowMillis()

	if err := s.records.Put(ctx, k, item); err != nil {
		s.logFault("delete member", k, err)
		return false, err
	}
	s.log.Debug("member removed", "key", k, "wallet", w)
	return true, nil
}
