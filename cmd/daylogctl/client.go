package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiFlag).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
}

func doGet(path string, query map[string]string) ([]byte, error) {
	resp, err := newClient().R().SetQueryParams(query).Get(path)
	if err != nil {
		return nil, err
	}
	return checkResp(resp)
}

func doPost(path string, payload interface{}) ([]byte, error) {
	resp, err := newClient().R().SetBody(payload).Post(path)
	if err != nil {
		return nil, err
	}
	return checkResp(resp)
}

func doPut(path string, payload interface{}) ([]byte, error) {
	resp, err := newClient().R().SetBody(payload).Put(path)
	if err != nil {
		return nil, err
	}
	return checkResp(resp)
}

func checkResp(resp *resty.Response) ([]byte, error) {
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
