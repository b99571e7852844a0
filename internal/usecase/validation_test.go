package usecase

import (
	"strings"
	"testing"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireParam(t *testing.T, err error, param string) {
	t.Helper()

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, param, validationErr.Param)
}

func TestValidatePostContent(t *testing.T) {
	require.NoError(t, validatePostContent("hi"))
	require.NoError(t, validatePostContent(strings.Repeat("a", constant.MAX_POST_CONTENT_LENGTH)))

	requireParam(t, validatePostContent(""), "content")
	requireParam(t, validatePostContent(strings.Repeat("a", constant.MAX_POST_CONTENT_LENGTH+1)), "content")
}

func TestNormalizeCreatorName(t *testing.T) {
	name, err := normalizeCreatorName(nil)
	require.NoError(t, err)
	assert.Nil(t, name)

	name, err = normalizeCreatorName(lo.ToPtr("   "))
	require.NoError(t, err)
	assert.Nil(t, name)

	name, err = normalizeCreatorName(lo.ToPtr("  Jo Cruz "))
	require.NoError(t, err)
	assert.Equal(t, "Jo Cruz", *name)

	_, err = normalizeCreatorName(lo.ToPtr(strings.Repeat("x", constant.MAX_CREATOR_NAME_LENGTH+1)))
	requireParam(t, err, "creatorName")
}

func TestNewListing(t *testing.T) {
	listing, err := newListing(model.PetListingRequest{
		PetName:  " Biscuit ",
		Breed:    "Beagle",
		Age:      0,
		ImageUrl: lo.ToPtr("http://img/b.webp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", listing.PetName)
	assert.Equal(t, constant.LISTING_STATUS_AVAILABLE, listing.Status)
	assert.Equal(t, "http://img/b.webp", *listing.ImageUrl)

	_, err = newListing(model.PetListingRequest{Breed: "Beagle"})
	requireParam(t, err, "petName")

	_, err = newListing(model.PetListingRequest{PetName: "Biscuit"})
	requireParam(t, err, "breed")

	_, err = newListing(model.PetListingRequest{PetName: "Biscuit", Breed: "Beagle", Age: -1})
	requireParam(t, err, "age")

	_, err = newListing(model.PetListingRequest{PetName: "Biscuit", Breed: "Beagle", CreatorId: lo.ToPtr(int64(0))})
	requireParam(t, err, "creatorId")
}

func TestNewPet(t *testing.T) {
	pet, err := newPet(model.PetRequest{
		Name:      " Rex ",
		Type:      "Dog",
		Age:       lo.ToPtr(0),
		Bio:       lo.ToPtr("   "),
		Documents: lo.ToPtr(" vaccination.pdf "),
		ImageUrl:  lo.ToPtr("http://img/rex.webp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rex", pet.Name)
	assert.Nil(t, pet.Bio)
	assert.Equal(t, "vaccination.pdf", *pet.Documents)
	assert.Equal(t, "http://img/rex.webp", *pet.ImageUrl)

	pet, err = newPet(model.PetRequest{Name: "Rex", Image: lo.ToPtr("http://img/a.webp"), ImageUrl: lo.ToPtr("http://img/b.webp")})
	require.NoError(t, err)
	assert.Equal(t, "http://img/a.webp", *pet.ImageUrl)
	assert.Nil(t, pet.Age)

	_, err = newPet(model.PetRequest{Name: "  "})
	requireParam(t, err, "name")

	_, err = newPet(model.PetRequest{Name: strings.Repeat("r", constant.MAX_PET_NAME_LENGTH+1)})
	requireParam(t, err, "name")

	_, err = newPet(model.PetRequest{Name: "Rex", Age: lo.ToPtr(-1)})
	requireParam(t, err, "age")
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, validateEmail("ada@example.com"))

	requireParam(t, validateEmail(""), "email")
	requireParam(t, validateEmail("not-an-email"), "email")
	requireParam(t, validateEmail("Ada <ada@example.com>"), "email")
}

func TestValidateOwnerName(t *testing.T) {
	require.NoError(t, validateOwnerName("Ada", "Lovelace"))

	requireParam(t, validateOwnerName("", "Lovelace"), "firstName")
	requireParam(t, validateOwnerName("Ada", ""), "lastName")
	requireParam(t, validateOwnerName(strings.Repeat("a", 101), "Lovelace"), "firstName")
}

func TestParseId(t *testing.T) {
	id, err := parseId("12", "postId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, value := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := parseId(value, "postId")
		requireParam(t, err, "postId")
	}
}

func TestCreatorDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", creatorDisplayName(model.PetOwnerResponse{FirstName: "Ada", LastName: "Lovelace"}))
	assert.Equal(t, "Ada", creatorDisplayName(model.PetOwnerResponse{FirstName: "Ada"}))
	assert.Equal(t, "", creatorDisplayName(model.PetOwnerResponse{}))
}
