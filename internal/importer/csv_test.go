package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapsColumnsByHeader(t *testing.T) {
	csv := strings.Join([]string{
		"full_name,phone_number,address,age,gender,date_of_birth,last_diagnosis",
		`"Ama Owusu",0244000000,"Accra, Osu",34,Female,1991-05-12,Malaria`,
		"Kofi Mensah,,,,Male,,",
	}, "\n")

	patients, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, patients, 2)

	assert.Equal(t, "Ama Owusu", patients[0].FullName)
	assert.Equal(t, "0244000000", patients[0].PhoneNumber)
	assert.Equal(t, "Accra, Osu", patients[0].Address)
	require.NotNil(t, patients[0].Age)
	assert.Equal(t, 34, *patients[0].Age)
	assert.Equal(t, "Female", patients[0].Gender)
	assert.Equal(t, "1991-05-12", patients[0].DateOfBirth)
	assert.Equal(t, "Malaria", patients[0].LastDiagnosis)

	assert.Equal(t, "Kofi Mensah", patients[1].FullName)
	assert.Nil(t, patients[1].Age, "blank age imports as absent")
}

func TestParseIgnoresColumnOrderAndUnknownColumns(t *testing.T) {
	csv := strings.Join([]string{
		"gender,notes,full_name",
		"Female,ignored,Ama Owusu",
	}, "\n")

	patients, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Ama Owusu", patients[0].FullName)
	assert.Equal(t, "Female", patients[0].Gender)
}

func TestParseUnparseableAgeImportsAsAbsent(t *testing.T) {
	csv := "full_name,gender,age\nAma Owusu,Female,unknown\n"

	patients, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Nil(t, patients[0].Age)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}
