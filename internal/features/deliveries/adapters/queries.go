package adapters

// lockClause is appended to reads made inside a write transaction.
const lockClause = ` FOR UPDATE`

const queryGetAnnouncement = `
SELECT
    id, author_id, title, description, pickup_address, delivery_address,
    scheduled_at, price, currency, status, created_at, updated_at
FROM announcements
WHERE id = $1`

const queryUpsertAnnouncement = `
INSERT INTO announcements (
    id, author_id, title, description, pickup_address, delivery_address,
    scheduled_at, price, currency, status, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    pickup_address = EXCLUDED.pickup_address,
    delivery_address = EXCLUDED.delivery_address,
    scheduled_at = EXCLUDED.scheduled_at,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at
`

const deliveryColumns = `
    id, announcement_id, deliverer_id, deliverer_name, status,
    validation_code, code_issued_at, pickup_address, delivery_address,
    scheduled_at, assigned_at, picked_up_at, completed_at, cancelled_at,
    price, commission, proof, created_at, updated_at`

const queryGetDelivery = `
SELECT` + deliveryColumns + `
FROM deliveries
WHERE id = $1`

const queryGetDeliveryByAnnouncement = `
SELECT` + deliveryColumns + `
FROM deliveries
WHERE announcement_id = $1`

const queryUpsertDelivery = `
INSERT INTO deliveries (` + deliveryColumns + `
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    validation_code = EXCLUDED.validation_code,
    code_issued_at = EXCLUDED.code_issued_at,
    assigned_at = EXCLUDED.assigned_at,
    picked_up_at = EXCLUDED.picked_up_at,
    completed_at = EXCLUDED.completed_at,
    cancelled_at = EXCLUDED.cancelled_at,
    proof = EXCLUDED.proof,
    updated_at = EXCLUDED.updated_at
`

const queryGetPaymentByDelivery = `
SELECT id, delivery_id, amount, currency, status, created_at, released_at
FROM payments
WHERE delivery_id = $1`

const queryUpsertPayment = `
INSERT INTO payments (id, delivery_id, amount, currency, status, created_at, released_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    released_at = EXCLUDED.released_at
`
