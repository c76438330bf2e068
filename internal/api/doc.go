/*
Package api implements the scoring HTTP surface: a single POST /method
endpoint accepting a JSON envelope {account, login, method, token,
arguments}, with token authentication and two methods, online_score and
clients_interests.

Every response is JSON: {"response": ..., "code": 200} on success and
{"error": "...", "code": N} on failure. The handler also exposes /healthz,
prometheus metrics on /metrics, and the embedded OpenAPI document on
/openapi.yaml with a Swagger UI on /swagger.
*/
package api
