package pubsub

import (
	"sort"
	"sync"
)

// store keeps subscriptions in memory, indexed by id and by topic.
type store struct {
	lock        *sync.RWMutex
	subs        map[string]Subscription
	subsByTopic map[string][]string
}

func newStore() *store {
	return &store{
		lock:        &sync.RWMutex{},
		subs:        make(map[string]Subscription),
		subsByTopic: make(map[string][]string),
	}
}

// add stores the subscription unless another one with the same topic,
// endpoint and secret exists, in which case the id of the latter is returned.
func (s *store) add(sub Subscription) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, id := range s.subsByTopic[sub.Event] {
		ss := s.subs[id]
		if ss.Endpoint == sub.Endpoint && ss.Secret == sub.Secret {
			return ss.ID
		}
	}

	s.subs[sub.ID] = sub
	s.subsByTopic[sub.Event] = append(s.subsByTopic[sub.Event], sub.ID)
	return sub.ID
}

// getForTopic returns the subscriptions of the given topic sorted by id, or
// all of them if the topic is unspecified.
func (s *store) getForTopic(topic string, unspecified bool) subscriptions {
	s.lock.RLock()
	defer s.lock.RUnlock()

	subs := make(subscriptions, 0)
	if unspecified {
		for _, sub := range s.subs {
			subs = append(subs, sub)
		}
	} else {
		for _, id := range s.subsByTopic[topic] {
			subs = append(subs, s.subs[id])
		}
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
}
