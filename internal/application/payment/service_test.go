package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/parent"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

// MockCheckoutGateway モック決済ゲートウェイ
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateCheckout(ctx context.Context, userID string, req *parent.CheckoutSessionRequest) (*parent.CheckoutSession, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parent.CheckoutSession), args.Error(1)
}

// MockCheckoutRecordRepository モック決済記録リポジトリ
type MockCheckoutRecordRepository struct {
	mock.Mock
}

func (m *MockCheckoutRecordRepository) Save(ctx context.Context, record *donation.CheckoutRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCheckoutRecordRepository) Stats(ctx context.Context) (donation.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(donation.Stats), args.Error(1)
}

func newTestService(t *testing.T, gateway parent.CheckoutGateway, records donation.CheckoutRecordRepository) *PaymentApplicationService {
	t.Helper()
	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return NewPaymentApplicationService(gateway, records, logger, metrics)
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestPaymentApplicationService_CreatePayment(t *testing.T) {
	const checkoutURL = "https://checkout.example.com/s/abc"

	tests := []struct {
		name        string
		query       string
		body        string
		wantUserID  string
		wantRequest *parent.CheckoutSessionRequest
		gatewayErr  error
		wantErr     error
	}{
		{
			name:       "正常系: 単発支援",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":3,"type":"one-time"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
		},
		{
			name:       "正常系: ティア付き定期支援",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":8,"type":"subscription","tier":"Champion"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Champion (monthly credits)",
				Description: "Recurring support converted to credits",
				PriceCents:  800,
			},
		},
		{
			name:       "正常系: ティア無し定期支援",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":15,"type":"subscription"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Subscription (monthly credits)",
				Description: "Recurring support converted to credits",
				PriceCents:  1500,
			},
		},
		{
			name:       "正常系: 不明なtypeは単発として扱う",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":2.5,"type":"weekly"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x2.5",
				Description: "One-time support converted to credits",
				PriceCents:  250,
			},
		},
		{
			name:       "正常系: プロジェクトIDはボディから補完",
			query:      "uid=user1",
			body:       `{"amount":5,"projectId":"bodyProj"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "bodyProj",
				ProductName: "Coffee x5",
				Description: "One-time support converted to credits",
				PriceCents:  500,
			},
		},
		{
			name:       "正常系: snake_caseのエイリアス",
			query:      "user_id=user2",
			body:       `{"amount":10,"project_id":"snakeProj"}`,
			wantUserID: "user2",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "snakeProj",
				ProductName: "Coffee x10",
				Description: "One-time support converted to credits",
				PriceCents:  1000,
			},
		},
		{
			name:       "正常系: クエリのプロジェクトIDがボディより優先",
			query:      "uid=user1&projectId=queryProj",
			body:       `{"amount":3,"projectId":"bodyProj"}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "queryProj",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
		},
		{
			name:    "異常系: uidが無い",
			query:   "projectId=proj1",
			body:    `{"amount":3}`,
			wantErr: donation.ErrMissingIdentity,
		},
		{
			name:    "異常系: projectIdが無い",
			query:   "uid=user1",
			body:    `{"amount":3}`,
			wantErr: donation.ErrMissingIdentity,
		},
		{
			name:    "異常系: IDと金額が両方不正ならIDのエラーを優先",
			query:   "",
			body:    `{"amount":-1}`,
			wantErr: donation.ErrMissingIdentity,
		},
		{
			name:    "異常系: 金額が0",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":0}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 金額がマイナス",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":-3}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 金額が文字列",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":"3"}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 金額が無い",
			query:   "uid=user1&projectId=proj1",
			body:    `{"type":"one-time"}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 金額がnull",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":null}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 1セント未満",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":0.001}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: ティア名が長すぎる",
			query:   "uid=user1&projectId=proj1",
			body:    fmt.Sprintf(`{"amount":3,"type":"subscription","tier":%q}`, strings.Repeat("x", 65)),
			wantErr: donation.ErrInvalidTier,
		},
		{
			name:    "異常系: uidが無くティア名も長すぎる場合はIDのエラーを優先",
			query:   "projectId=proj1",
			body:    fmt.Sprintf(`{"amount":3,"type":"subscription","tier":%q}`, strings.Repeat("x", 65)),
			wantErr: donation.ErrMissingIdentity,
		},
		{
			name:    "異常系: projectIdが長すぎる",
			query:   "uid=user1&projectId=" + strings.Repeat("p", 256),
			body:    `{"amount":3,"tier":"` + strings.Repeat("x", 65) + `"}`,
			wantErr: donation.ErrMissingIdentity,
		},
		{
			name:    "異常系: 金額が大きすぎてセントに収まらない",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":1e18,"type":"one-time"}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:    "異常系: 金額がfloat64で表せない",
			query:   "uid=user1&projectId=proj1",
			body:    `{"amount":1e400}`,
			wantErr: donation.ErrInvalidAmount,
		},
		{
			name:       "正常系: 1.005はfloat64で丸めて100セント",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":1.005}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x1.005",
				Description: "One-time support converted to credits",
				PriceCents:  100,
			},
		},
		{
			name:       "正常系: 0.285は28セント",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":0.285}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x0.285",
				Description: "One-time support converted to credits",
				PriceCents:  28,
			},
		},
		{
			name:       "正常系: 文字列以外のtypeとtierは無視",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":3,"type":5,"tier":{"name":"Champion"}}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
		},
		{
			name:       "異常系: 接続先未設定",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":3}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
			gatewayErr: parent.ErrNotConfigured,
			wantErr:    parent.ErrNotConfigured,
		},
		{
			name:       "異常系: 親アプリが拒否",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":3}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
			gatewayErr: fmt.Errorf("%w: status 502", parent.ErrCheckoutFailed),
			wantErr:    parent.ErrCheckoutFailed,
		},
		{
			name:       "異常系: 親アプリに到達できない",
			query:      "uid=user1&projectId=proj1",
			body:       `{"amount":3}`,
			wantUserID: "user1",
			wantRequest: &parent.CheckoutSessionRequest{
				ProjectID:   "proj1",
				ProductName: "Coffee x3",
				Description: "One-time support converted to credits",
				PriceCents:  300,
			},
			gatewayErr: fmt.Errorf("%w: connection refused", parent.ErrUnavailable),
			wantErr:    donation.ErrPaymentFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockCheckoutGateway)
			records := new(MockCheckoutRecordRepository)

			if tt.wantRequest != nil {
				if tt.gatewayErr != nil {
					gateway.On("CreateCheckout", mock.Anything, tt.wantUserID, tt.wantRequest).
						Return(nil, tt.gatewayErr)
				} else {
					gateway.On("CreateCheckout", mock.Anything, tt.wantUserID, tt.wantRequest).
						Return(&parent.CheckoutSession{URL: checkoutURL}, nil)
					records.On("Save", mock.Anything, mock.MatchedBy(func(r *donation.CheckoutRecord) bool {
						return r.UserID() == tt.wantUserID &&
							r.ProjectID() == tt.wantRequest.ProjectID &&
							r.PriceCents() == tt.wantRequest.PriceCents
					})).Return(nil)
				}
			}

			var body CreatePaymentBody
			require.NoError(t, json.Unmarshal([]byte(tt.body), &body))

			svc := newTestService(t, gateway, records)
			result, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
				Query: mustQuery(t, tt.query),
				Body:  body,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, checkoutURL, result.URL)
				assert.Equal(t, tt.wantRequest.PriceCents, result.PriceCents)
				assert.Equal(t, tt.wantRequest.ProductName, result.ProductName)
				records.AssertExpectations(t)
			}

			if tt.wantRequest == nil {
				gateway.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything, mock.Anything)
			} else {
				gateway.AssertExpectations(t)
			}
		})
	}
}

func TestPaymentApplicationService_CreatePayment_RecordFailureIsIgnored(t *testing.T) {
	gateway := new(MockCheckoutGateway)
	records := new(MockCheckoutRecordRepository)

	gateway.On("CreateCheckout", mock.Anything, "user1", mock.Anything).
		Return(&parent.CheckoutSession{URL: "https://checkout.example.com/s/1"}, nil)
	records.On("Save", mock.Anything, mock.Anything).Return(errors.New("database is down"))

	svc := newTestService(t, gateway, records)
	result, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		Query: mustQuery(t, "uid=user1&projectId=proj1"),
		Body:  CreatePaymentBody{Amount: json.RawMessage(`3`)},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/s/1", result.URL)
	records.AssertExpectations(t)
}

func TestPaymentApplicationService_CreatePayment_WithoutRecords(t *testing.T) {
	gateway := new(MockCheckoutGateway)
	gateway.On("CreateCheckout", mock.Anything, "user1", mock.Anything).
		Return(&parent.CheckoutSession{URL: "https://checkout.example.com/s/1"}, nil)

	svc := newTestService(t, gateway, nil)
	result, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		Query: mustQuery(t, "uid=user1&projectId=proj1"),
		Body:  CreatePaymentBody{Amount: json.RawMessage(`3`)},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/s/1", result.URL)
}

func TestCreatePaymentBody_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    CreatePaymentBody
		wantErr bool
	}{
		{
			name: "正常系: すべて文字列",
			raw:  `{"amount":3,"type":"subscription","tier":"Champion","projectId":"p1","project_id":"p2"}`,
			want: CreatePaymentBody{Amount: json.RawMessage(`3`), Type: "subscription", Tier: "Champion", ProjectID: "p1", ProjectIDSnake: "p2"},
		},
		{
			name: "正常系: 文字列以外は空",
			raw:  `{"amount":"3","type":5,"tier":null,"projectId":true}`,
			want: CreatePaymentBody{Amount: json.RawMessage(`"3"`)},
		},
		{name: "正常系: null", raw: `null`, want: CreatePaymentBody{}},
		{name: "異常系: 壊れたJSON", raw: `{"amount":3,`, wantErr: true},
		{name: "異常系: 配列", raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CreatePaymentBody
			err := json.Unmarshal([]byte(tt.raw), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "整数", raw: `3`, want: "3"},
		{name: "小数", raw: `2.5`, want: "2.5"},
		{name: "指数表記", raw: `1e1`, want: "10"},
		{name: "前後の空白", raw: ` 4 `, want: "4"},
		{name: "文字列", raw: `"3"`, wantErr: true},
		{name: "真偽値", raw: `true`, wantErr: true},
		{name: "オブジェクト", raw: `{}`, wantErr: true},
		{name: "空", raw: ``, wantErr: true},
		{name: "ゼロ", raw: `0`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, donation.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
