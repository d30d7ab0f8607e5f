package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestVarietyFourApproachesSaturate(t *testing.T) {
	sample := m.Sample{SourceText: `
@pytest.fixture
def cart():
    return Cart()

class CartTest:
    @pytest.mark.parametrize("qty", [1, 2])
    def test_add(self, cart, qty):
        repo = MagicMock()
        cart.add("sku", qty)
`}

	res := Variety(sample)
	require.InDelta(t, 1.0, res.Score, 1e-9)
	require.InDelta(t, 1, res.Evidence["parameterized"], 1e-9)
	require.InDelta(t, 1, res.Evidence["mocking"], 1e-9)
	require.InDelta(t, 1, res.Evidence["setup_teardown"], 1e-9)
	require.InDelta(t, 1, res.Evidence["grouping"], 1e-9)
}

func TestVarietySingleApproach(t *testing.T) {
	res := Variety(m.Sample{SourceText: "def setUp(self):\n    pass\n"})
	require.InDelta(t, 0.25, res.Score, 1e-9)
	require.InDelta(t, 1, res.Evidence["approaches_present"], 1e-9)
}

func TestVarietyNoApproaches(t *testing.T) {
	res := Variety(m.Sample{SourceText: "x = 1\n"})
	require.Zero(t, res.Score)
}
