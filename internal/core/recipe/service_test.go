package recipe

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgpt-api/internal/pkg/common"
)

// fakeGenerator 以固定輸出或固定錯誤代替生成服務
type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeStore 記憶體假儲存，可注入寫入錯誤
type fakeStore struct {
	entries []*common.StoredRecipeEntry
	addErr  error
}

func (f *fakeStore) Add(ctx context.Context, entry *common.StoredRecipeEntry) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.entries = append(f.entries, entry)
	return "fake-id", nil
}

func (f *fakeStore) History(ctx context.Context, userID string) ([]common.StoredRecipeEntry, error) {
	var out []common.StoredRecipeEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*common.StoredRecipeEntry, error) {
	if id == "fake-id" && len(f.entries) > 0 {
		return f.entries[len(f.entries)-1], nil
	}
	return nil, nil
}

func (f *fakeStore) Close() error { return nil }

// fakeCache 記憶體假快取
type fakeCache struct {
	values map[string]string
}

func (f *fakeCache) Get(ctx context.Context, prompt string) (string, error) {
	if v, ok := f.values[prompt]; ok {
		return v, nil
	}
	return "", common.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, prompt string, value string) error {
	f.values[prompt] = value
	return nil
}

func (f *fakeCache) Close() error { return nil }

const structuredOutput = `{"recipe_name": "Fried Rice", "ingredients": ["rice", "egg"], "instructions": ["Fry."], "estimated_calories": 400}`

func TestServiceGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{response: structuredOutput}
	store := &fakeStore{}
	svc := NewService(gen, store, nil)

	result, err := svc.Generate(context.Background(), &common.RecipeRequest{
		Ingredients: []string{"rice", "egg"},
		UserID:      "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "fake-id", result.ID)
	assert.Equal(t, "Fried Rice", result.Recipe.RecipeName)
	assert.False(t, result.Recipe.IsFallback())

	// 寫入的紀錄帶有請求情境
	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, "alice", entry.UserID)
	assert.Equal(t, "Fried Rice", entry.RecipeName)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestServiceGenerateValidationError(t *testing.T) {
	gen := &fakeGenerator{response: structuredOutput}
	store := &fakeStore{}
	svc := NewService(gen, store, nil)

	_, err := svc.Generate(context.Background(), &common.RecipeRequest{Mode: common.ModeDish})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	// 驗證失敗時不呼叫生成服務、不寫入
	assert.Zero(t, gen.calls)
	assert.Empty(t, store.entries)
}

func TestServiceGenerateUpstreamFailure(t *testing.T) {
	upstreamErr := common.NewError(common.ErrCodeUpstreamTimeout, "生成服務逾時",
		http.StatusGatewayTimeout, errors.New("deadline exceeded"))
	gen := &fakeGenerator{err: upstreamErr}
	store := &fakeStore{}
	svc := NewService(gen, store, nil)

	_, err := svc.Generate(context.Background(), &common.RecipeRequest{
		Ingredients: []string{"egg"},
	})
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeUpstreamTimeout, common.ErrorCode(err))

	// 生成失敗時不留任何紀錄
	assert.Empty(t, store.entries)
}

func TestServiceGeneratePersistenceFailureStillReturnsRecipe(t *testing.T) {
	gen := &fakeGenerator{response: structuredOutput}
	store := &fakeStore{addErr: errors.New("firestore unavailable")}
	svc := NewService(gen, store, nil)

	result, err := svc.Generate(context.Background(), &common.RecipeRequest{
		Ingredients: []string{"rice"},
	})
	require.NoError(t, err)

	// 儲存失敗時 ID 為空，食譜本身照常回傳
	assert.Empty(t, result.ID)
	assert.Equal(t, "Fried Rice", result.Recipe.RecipeName)
}

func TestServiceGenerateFallbackPersisted(t *testing.T) {
	gen := &fakeGenerator{response: "Sure! Here is a recipe for fried rice..."}
	store := &fakeStore{}
	svc := NewService(gen, store, nil)

	result, err := svc.Generate(context.Background(), &common.RecipeRequest{
		Ingredients: []string{"rice"},
	})
	require.NoError(t, err)

	assert.True(t, result.Recipe.IsFallback())
	assert.Equal(t, "Sure! Here is a recipe for fried rice...", result.Recipe.RawResponse)

	// fallback 形式同樣寫入儲存
	require.Len(t, store.entries, 1)
	assert.Equal(t, result.Recipe.RawResponse, store.entries[0].RawResponse)
}

func TestServiceGenerateCacheHitSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{response: structuredOutput}
	store := &fakeStore{}
	cache := &fakeCache{values: map[string]string{}}
	svc := NewService(gen, store, cache)

	req := func() *common.RecipeRequest {
		return &common.RecipeRequest{Ingredients: []string{"rice", "egg"}}
	}

	_, err := svc.Generate(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)

	// 相同提示詞第二次直接命中快取
	_, err = svc.Generate(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)

	// 每次仍各寫入一筆紀錄
	assert.Len(t, store.entries, 2)
}

func TestServiceGenerateDefaultUser(t *testing.T) {
	gen := &fakeGenerator{response: structuredOutput}
	store := &fakeStore{}
	svc := NewService(gen, store, nil)

	_, err := svc.Generate(context.Background(), &common.RecipeRequest{
		Ingredients: []string{"egg"},
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, common.DefaultUserID, store.entries[0].UserID)
}
