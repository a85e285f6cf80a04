package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionResultDecoding(t *testing.T) {
	t.Run("absent keys decode as not provided", func(t *testing.T) {
		var r ExtractionResult
		require.NoError(t, json.Unmarshal([]byte(`{"status":"success","document_type":"passport","essential_fields":{"full_name":{"value":"Jane Doe","confidence":0.93}}}`), &r))

		assert.True(t, r.Succeeded())
		assert.Equal(t, TypePassport, r.DocumentType)
		assert.Equal(t, "Jane Doe", r.EssentialFields.FullName.Value)
		require.NotNil(t, r.EssentialFields.FullName.Confidence)
		assert.InDelta(t, 0.93, *r.EssentialFields.FullName.Confidence, 1e-9)
		assert.True(t, r.EssentialFields.DateOfBirth.IsEmpty())
		assert.Nil(t, r.EssentialFields.Address)
		assert.Equal(t, "", r.EssentialFields.AddressValue())
		assert.Equal(t, "", r.Metadata.Value(FieldPassportNumber))
		assert.False(t, r.Metadata.Has(FieldPassportNumber))
	})

	t.Run("null values decode as empty", func(t *testing.T) {
		var r ExtractionResult
		require.NoError(t, json.Unmarshal([]byte(`{"status":"success","metadata":{"id_type":{"value":null}}}`), &r))
		assert.True(t, r.Metadata.Has(FieldIDType))
		assert.False(t, r.Metadata.AnyValue())
	})

	t.Run("pipeline annotations are tolerated", func(t *testing.T) {
		var r ExtractionResult
		require.NoError(t, json.Unmarshal([]byte(`{"status":"invalid","age":34,"_processing_info":{"image_path":"x.jpg"}}`), &r))
		assert.False(t, r.Succeeded())
	})
}

func TestTypeVariants(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.IsKnown(), typ)
		assert.NotEmpty(t, typ.Fields(), typ)
		for _, req := range typ.RequiredFields() {
			assert.Contains(t, typ.Fields(), req, "%s requires a field it does not extract", typ)
		}
	}

	unknown := Type("library_card")
	assert.False(t, unknown.IsKnown())
	assert.Nil(t, unknown.Fields())
	assert.True(t, TypeDriversLicense.RequiresAddress())
	assert.False(t, TypePassport.RequiresAddress())
}
