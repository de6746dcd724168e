package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
)

func TestNotJoinedFailsClosedOnLookupError(t *testing.T) {
	bot := newMockBot()
	bot.Memberships["@good"] = adapter.MemberMember
	bot.MemberErr["@flaky"] = errors.New("bad gateway")

	verifier := NewMembershipVerifier(bot, testLogger())
	missing := verifier.NotJoined(context.Background(), 7, []model.RequiredChannel{
		{Handle: "good"},
		{Handle: "flaky"},
	})

	if !reflect.DeepEqual(missing, []string{"flaky"}) {
		t.Fatalf("missing = %v, want [flaky]", missing)
	}
}

func TestNotJoinedChecksEveryChannelWithoutShortCircuit(t *testing.T) {
	bot := newMockBot()
	// all default to "left"
	verifier := NewMembershipVerifier(bot, testLogger())

	missing := verifier.NotJoined(context.Background(), 7, []model.RequiredChannel{
		{Handle: "a"}, {Handle: "b"}, {Handle: "c"},
	})

	if !reflect.DeepEqual(missing, []string{"a", "b", "c"}) {
		t.Fatalf("missing = %v", missing)
	}
	if !reflect.DeepEqual(bot.Lookups, []string{"@a", "@b", "@c"}) {
		t.Fatalf("lookups = %v, want all three in order", bot.Lookups)
	}
}

func TestNotJoinedStatusMapping(t *testing.T) {
	cases := []struct {
		status adapter.MemberStatus
		joined bool
	}{
		{adapter.MemberCreator, true},
		{adapter.MemberAdministrator, true},
		{adapter.MemberMember, true},
		{adapter.MemberRestricted, false},
		{adapter.MemberLeft, false},
		{adapter.MemberKicked, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			bot := newMockBot()
			bot.Memberships["@ch"] = tc.status
			verifier := NewMembershipVerifier(bot, testLogger())
			missing := verifier.NotJoined(context.Background(), 7, []model.RequiredChannel{{Handle: "ch"}})
			if joined := len(missing) == 0; joined != tc.joined {
				t.Fatalf("status %q: joined=%v, want %v", tc.status, joined, tc.joined)
			}
		})
	}
}

func TestNotJoinedEmptyChannelListNeedsNoLookups(t *testing.T) {
	bot := newMockBot()
	verifier := NewMembershipVerifier(bot, testLogger())
	if missing := verifier.NotJoined(context.Background(), 7, nil); missing != nil {
		t.Fatalf("missing = %v, want nil", missing)
	}
	if len(bot.Lookups) != 0 {
		t.Fatalf("lookups = %v", bot.Lookups)
	}
}
