package systems

import (
	"testing"

	"photohunt-server/internal/domain"
)

func TestTakePicture_Creatures(t *testing.T) {
	w := newTestWorld("..........")
	s := w.addSession("a", 0, 0, domain.DirRight)
	near := w.addCreature(domain.TierCautious, 3, 0, domain.DirUp)
	far := w.addCreature(domain.TierBold, 9, 0, domain.DirUp)

	res := TakePicture(s, w, 5)

	if len(res.Creatures) != 1 || res.Creatures[0] != near.ID {
		t.Fatalf("photographed %v, want only %d", res.Creatures, near.ID)
	}
	if _, ok := s.Photographed[far.ID]; ok {
		t.Error("creature beyond photo range must not be captured")
	}

	// Повторный снимок не меняет счет
	TakePicture(s, w, 5)
	if s.Score() != 1 {
		t.Errorf("score after repeat = %d, want 1", s.Score())
	}
}

func TestTakePicture_Obstacles(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want int
	}{
		{name: "tree hides creature behind it", row: "..T.C", want: 0},
		{name: "rock hides creature behind it", row: "..R.C", want: 0},
		{name: "bush hides creature behind it", row: "..B.C", want: 0},
		{name: "bush next to creature", row: "...BC", want: 0},
		{name: "clear line", row: "....C", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := []rune(tt.row)
			creatureX := -1
			for i, r := range layout {
				if r == 'C' {
					creatureX = i
					layout[i] = '.'
				}
			}
			w := newTestWorld(string(layout))
			s := w.addSession("a", 0, 0, domain.DirRight)
			w.addCreature(domain.TierCautious, creatureX, 0, domain.DirUp)

			TakePicture(s, w, 10)
			if s.Score() != tt.want {
				t.Errorf("score = %d, want %d", s.Score(), tt.want)
			}
		})
	}
}

func TestTakePicture_BushOccupantIsChecked(t *testing.T) {
	w := newTestWorld("..B..")
	s := w.addSession("a", 0, 0, domain.DirRight)
	c := w.addCreature(domain.TierMedium, 2, 0, domain.DirUp)
	w.addCreature(domain.TierMedium, 4, 0, domain.DirUp)

	res := TakePicture(s, w, 10)
	if len(res.Creatures) != 1 || res.Creatures[0] != c.ID {
		t.Errorf("photographed %v, want the creature in the bush only", res.Creatures)
	}
}

// Два охотника в коридоре смотрят друг на друга: флаг ставится только снимающему.
func TestTakePicture_RivalInCorridor(t *testing.T) {
	w := newTestWorld(".....")
	a := w.addSession("a", 0, 0, domain.DirRight)
	b := w.addSession("b", 3, 0, domain.DirLeft)

	res := TakePicture(a, w, 10)

	if len(res.Rivals) != 1 || res.Rivals[0] != b.ID {
		t.Fatalf("rivals = %v, want [b]", res.Rivals)
	}
	if !a.PhotographedRival {
		t.Error("photographer must be flagged")
	}
	if b.PhotographedRival {
		t.Error("the photographed rival must not be flagged")
	}
	if a.Score() != domain.RivalScore {
		t.Errorf("score = %d, want %d", a.Score(), domain.RivalScore)
	}
}

func TestTakePicture_FacingAway(t *testing.T) {
	w := newTestWorld(".....")
	a := w.addSession("a", 0, 0, domain.DirLeft)
	w.addSession("b", 3, 0, domain.DirLeft)

	res := TakePicture(a, w, 10)
	if len(res.Rivals) != 0 || a.PhotographedRival {
		t.Error("rival behind the photographer must not be captured")
	}
}
