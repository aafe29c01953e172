package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/response"
)

// Every admin tries to leave or step down in turn. Whatever the mix, the
// board ends with exactly one admin and only the final attempt conflicts.
func TestProperty_BoardKeepsAnAdmin(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("the last admin can neither leave nor be demoted", prop.ForAll(
		func(extra int, leave []bool) bool {
			f := newFixture(t)
			env := f.env
			ctx := context.Background()

			admins := []uuid.UUID{f.owner.ID}
			for i := 0; i < extra; i++ {
				u := env.createUser(t, fmt.Sprintf("admin%d", i))
				env.joinBoard(t, f.board.ID, u.ID, domain.MemberRoleAdmin)
				admins = append(admins, u.ID)
			}

			conflicts := 0
			for i, id := range admins {
				var err error
				if i < len(leave) && leave[i] {
					err = env.boards.RemoveMember(ctx, f.board.ID, id, id)
				} else {
					_, err = env.boards.UpdateMemberRole(ctx, f.board.ID, id, id, string(domain.MemberRoleMember))
				}
				if err != nil {
					if !response.HasCode(err, response.ErrCodeConflict) || i != len(admins)-1 {
						return false
					}
					conflicts++
				}
			}

			count, err := env.boardRepo.CountAdmins(ctx, f.board.ID)
			return err == nil && count == 1 && conflicts == 1
		},
		gen.IntRange(0, 3),
		gen.SliceOfN(4, gen.Bool()),
	))

	properties.TestingRun(t)
}
